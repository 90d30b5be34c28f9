package validate

import (
	"regexp"

	"github.com/iancoleman/orderedmap"

	"github.com/pawelmaslanka/json-schema-validator/internal/jserr"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsondoc"
)

func (v *Validator) validateObject(instance any, schemaObj *orderedmap.OrderedMap, path string) error {
	obj, _ := jsondoc.AsObject(instance)

	if v.insertDefaults {
		insertDefaults(obj, schemaObj)
	}

	if maxPropsVal, ok := schemaObj.Get("maxProperties"); ok {
		maxProps, _ := jsondoc.AsFloat(maxPropsVal)
		if float64(len(obj.Keys())) > maxProps {
			return jserr.NewValidationError(path, "object has %d properties, exceeds maxProperties %v", len(obj.Keys()), maxProps)
		}
	}
	if minPropsVal, ok := schemaObj.Get("minProperties"); ok {
		minProps, _ := jsondoc.AsFloat(minPropsVal)
		if float64(len(obj.Keys())) < minProps {
			return jserr.NewValidationError(path, "object has %d properties, below minProperties %v", len(obj.Keys()), minProps)
		}
	}

	properties, _ := jsondoc.AsObject(valueOrNil(schemaObj, "properties"))

	patternSchemas, patternRegexps, err := v.compilePatternProperties(schemaObj, path)
	if err != nil {
		return err
	}

	additionalMode, additionalSchema, err := additionalPropertiesMode(schemaObj, path)
	if err != nil {
		return err
	}

	for _, key := range obj.Keys() {
		child, _ := obj.Get(key)
		childPath := propPath(path, key)

		if properties != nil {
			if propSchema, ok := properties.Get(key); ok {
				if err := v.Validate(child, propSchema, childPath); err != nil {
					return err
				}
				continue
			}
		}

		matchedPattern := false
		for i, re := range patternRegexps {
			if re.MatchString(key) {
				matchedPattern = true
				if err := v.Validate(child, patternSchemas[i], childPath); err != nil {
					return err
				}
			}
		}
		if matchedPattern {
			continue
		}

		switch additionalMode {
		case additionalAllow:
			// accepted, no further constraint
		case additionalDeny:
			return jserr.NewValidationError(path, "unknown property %q", key)
		case additionalSchemaMode:
			if err := v.Validate(child, additionalSchema, childPath); err != nil {
				return err
			}
		}
	}

	if requiredVal, ok := schemaObj.Get("required"); ok {
		names, _ := jsondoc.AsArray(requiredVal)
		for _, n := range names {
			name, _ := jsondoc.AsString(n)
			if _, ok := obj.Get(name); !ok {
				return jserr.NewValidationError(path, "missing required property %q", name)
			}
		}
	}

	if depsVal, ok := schemaObj.Get("dependencies"); ok {
		depsObj, isObj := jsondoc.AsObject(depsVal)
		if !isObj {
			return jserr.NewSchemaError("dependencies at %s must be an object", path)
		}
		for _, depKey := range depsObj.Keys() {
			if _, present := obj.Get(depKey); !present {
				continue
			}
			depVal, _ := depsObj.Get(depKey)
			if depSchema, ok := jsondoc.AsObject(depVal); ok {
				if err := v.Validate(instance, depSchema, path); err != nil {
					return err
				}
				continue
			}
			if names, ok := jsondoc.AsArray(depVal); ok {
				for _, n := range names {
					name, _ := jsondoc.AsString(n)
					if _, present := obj.Get(name); !present {
						return jserr.NewValidationError(path, "property %q requires %q to also be present", depKey, name)
					}
				}
			}
		}
	}

	return nil
}

type additionalPropertiesKind int

const (
	additionalAllow additionalPropertiesKind = iota
	additionalDeny
	additionalSchemaMode
)

func additionalPropertiesMode(schemaObj *orderedmap.OrderedMap, path string) (additionalPropertiesKind, *orderedmap.OrderedMap, error) {
	val, ok := schemaObj.Get("additionalProperties")
	if !ok {
		return additionalAllow, nil, nil
	}
	if b, ok := jsondoc.AsBool(val); ok {
		if b {
			return additionalAllow, nil, nil
		}
		return additionalDeny, nil, nil
	}
	if schema, ok := jsondoc.AsObject(val); ok {
		return additionalSchemaMode, schema, nil
	}
	return additionalAllow, nil, jserr.NewSchemaError("additionalProperties at %s must be a boolean or a schema", path)
}

func (v *Validator) compilePatternProperties(schemaObj *orderedmap.OrderedMap, path string) ([]any, []*regexp.Regexp, error) {
	ppVal, ok := schemaObj.Get("patternProperties")
	if !ok {
		return nil, nil, nil
	}
	ppObj, ok := jsondoc.AsObject(ppVal)
	if !ok {
		return nil, nil, jserr.NewSchemaError("patternProperties at %s must be an object", path)
	}
	var schemas []any
	var res []*regexp.Regexp
	for _, pattern := range ppObj.Keys() {
		re, err := v.compilePattern(pattern)
		if err != nil {
			return nil, nil, jserr.NewSchemaError("invalid patternProperties key %q: %v", pattern, err)
		}
		schema, _ := ppObj.Get(pattern)
		schemas = append(schemas, schema)
		res = append(res, re)
	}
	return schemas, res, nil
}

func (v *Validator) compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := v.patternCache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	v.patternCache[pattern] = re
	return re, nil
}

func valueOrNil(schemaObj *orderedmap.OrderedMap, key string) any {
	v, ok := schemaObj.Get(key)
	if !ok {
		return nil
	}
	return v
}

// insertDefaults fills in properties named in the schema's "properties"
// that carry a "default" and are absent from obj. It does not look
// through $ref: a $ref-ed property schema's own default is not applied
// here, matching the behavior of the implementation this is grounded on.
func insertDefaults(obj *orderedmap.OrderedMap, schemaObj *orderedmap.OrderedMap) {
	propsVal, ok := schemaObj.Get("properties")
	if !ok {
		return
	}
	props, ok := jsondoc.AsObject(propsVal)
	if !ok {
		return
	}
	for _, name := range props.Keys() {
		propSchemaVal, _ := props.Get(name)
		propSchema, ok := jsondoc.AsObject(propSchemaVal)
		if !ok {
			continue
		}
		defaultVal, hasDefault := propSchema.Get("default")
		if !hasDefault {
			continue
		}
		if _, present := obj.Get(name); present {
			continue
		}
		obj.Set(name, defaultVal)
	}
}
