// Package validate implements the recursive, schema-directed interpreter:
// given an instance and a schema node, it dispatches on the instance's
// runtime kind and checks the schema's constraint keywords, failing fast
// on the first violation. It is grounded on the type-dispatch structure of
// the original validate() function this module is descended from: an
// unsupported-keyword check, then $ref chasing, then enum, then a switch
// on instance kind.
package validate

import (
	"fmt"
	"math"
	"regexp"

	"github.com/iancoleman/orderedmap"

	"github.com/pawelmaslanka/json-schema-validator/internal/jserr"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsondoc"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsonuri"
)

// Lookup resolves a schema URI to its node, as provided by a *corpus.Corpus.
type Lookup func(jsonuri.URI) (any, bool)

// Validator walks an instance against schemas drawn from a corpus via its
// Lookup function.
type Validator struct {
	lookup         Lookup
	insertDefaults bool
	patternCache   map[string]*regexp.Regexp
}

// New returns a Validator that resolves $ref targets through lookup.
func New(lookup Lookup) *Validator {
	return &Validator{lookup: lookup, patternCache: make(map[string]*regexp.Regexp)}
}

// EnableDefaultValueInsertion turns default-property insertion on or off.
func (v *Validator) EnableDefaultValueInsertion(enabled bool) {
	v.insertDefaults = enabled
}

// Validate checks instance against the schema node schemaNode, reporting
// the first violation found under the given path name.
func (v *Validator) Validate(instance any, schemaNode any, path string) error {
	schemaObj, isObject := jsondoc.AsObject(schemaNode)
	if !isObject {
		// A boolean schema: true accepts everything, false accepts nothing.
		if b, ok := jsondoc.AsBool(schemaNode); ok {
			if b {
				return nil
			}
			return jserr.NewValidationError(path, "schema is false: no instance is valid")
		}
		return nil
	}

	if err := refuseUnsupported(schemaObj); err != nil {
		return err
	}

	for {
		refVal, hasRef := schemaObj.Get("$ref")
		if !hasRef {
			break
		}
		refStr, ok := jsondoc.AsString(refVal)
		if !ok {
			return jserr.NewSchemaError("$ref at %s is not a string", path)
		}
		refURI, err := jsonuri.Parse(refStr)
		if err != nil {
			return jserr.NewSchemaError("invalid $ref %q: %v", refStr, err)
		}
		node, ok := v.lookup(refURI)
		if !ok {
			return jserr.NewSchemaError("unresolved $ref %q", refStr)
		}
		obj, isObj := jsondoc.AsObject(node)
		if !isObj {
			return v.Validate(instance, node, path)
		}
		if err := refuseUnsupported(obj); err != nil {
			return err
		}
		schemaObj = obj
	}

	if enumVal, ok := schemaObj.Get("enum"); ok {
		if err := validateEnum(instance, enumVal, path); err != nil {
			return err
		}
	}

	if err := validateType(instance, schemaObj, path); err != nil {
		return err
	}

	switch jsondoc.KindOf(instance) {
	case jsondoc.KindObject:
		return v.validateObject(instance, schemaObj, path)
	case jsondoc.KindArray:
		return v.validateArray(instance, schemaObj, path)
	case jsondoc.KindString:
		return validateString(instance, schemaObj, path)
	case jsondoc.KindInteger, jsondoc.KindFloat:
		return validateNumeric(instance, schemaObj, path)
	case jsondoc.KindBool, jsondoc.KindNull:
		return nil
	default:
		return jserr.NewSchemaError("instance at %s has an unrecognized JSON kind", path)
	}
}

var unsupportedKeywords = []string{"allOf", "anyOf", "oneOf", "not"}

func refuseUnsupported(schemaObj *orderedmap.OrderedMap) error {
	for _, kw := range unsupportedKeywords {
		if _, ok := schemaObj.Get(kw); ok {
			return jserr.Unsupported(kw)
		}
	}
	return nil
}

func validateEnum(instance any, enumVal any, path string) error {
	candidates, ok := jsondoc.AsArray(enumVal)
	if !ok {
		return jserr.NewSchemaError("enum at %s is not an array", path)
	}
	for _, c := range candidates {
		if jsondoc.Equal(instance, c) {
			return nil
		}
	}
	return jserr.NewValidationError(path, "value is not one of the enumerated values %v", candidates)
}

func validateType(instance any, schemaObj *orderedmap.OrderedMap, path string) error {
	typeVal, ok := schemaObj.Get("type")
	if !ok {
		return nil
	}
	tags := jsondoc.TypeTags(instance)
	if expected, ok := jsondoc.AsString(typeVal); ok {
		for _, tag := range tags {
			if tag == expected {
				return nil
			}
		}
		return jserr.NewValidationError(path, "expected type %q, got %q", expected, jsondoc.KindOf(instance).String())
	}
	if expectedList, ok := jsondoc.AsArray(typeVal); ok {
		for _, e := range expectedList {
			es, ok := jsondoc.AsString(e)
			if !ok {
				continue
			}
			for _, tag := range tags {
				if tag == es {
					return nil
				}
			}
		}
		return jserr.NewValidationError(path, "expected type to be one of %v, got %q", expectedList, jsondoc.KindOf(instance).String())
	}
	return jserr.NewSchemaError("type at %s is neither a string nor an array", path)
}

func validateString(instance any, schemaObj *orderedmap.OrderedMap, path string) error {
	if _, ok := schemaObj.Get("format"); ok {
		return jserr.Unsupported("format")
	}
	if _, ok := schemaObj.Get("pattern"); ok {
		return jserr.Unsupported("pattern")
	}

	s, _ := jsondoc.AsString(instance)

	if maxLenVal, ok := schemaObj.Get("maxLength"); ok {
		maxLen, _ := jsondoc.AsFloat(maxLenVal)
		if float64(len(s)) > maxLen {
			return jserr.NewValidationError(path, "string length %d exceeds maxLength %v", len(s), maxLen)
		}
	}
	if minLenVal, ok := schemaObj.Get("minLength"); ok {
		minLen, _ := jsondoc.AsFloat(minLenVal)
		if float64(len(s)) < minLen {
			return jserr.NewValidationError(path, "string length %d is below minLength %v", len(s), minLen)
		}
	}
	return nil
}

func validateNumeric(instance any, schemaObj *orderedmap.OrderedMap, path string) error {
	f, _ := jsondoc.AsFloat(instance)

	if multipleOfVal, ok := schemaObj.Get("multipleOf"); ok {
		m, _ := jsondoc.AsFloat(multipleOfVal)
		if m != 0 {
			_, frac := math.Modf(f / m)
			if frac != 0 {
				return jserr.NewValidationError(path, "value %v is not a multiple of %v", f, m)
			}
		}
	}

	if maxVal, ok := schemaObj.Get("maximum"); ok {
		max, _ := jsondoc.AsFloat(maxVal)
		exclusive := boolSibling(schemaObj, "exclusiveMaximum")
		if exclusive {
			if f >= max {
				return jserr.NewValidationError(path, "value %v is not strictly below exclusive maximum %v", f, max)
			}
		} else if f > max {
			return jserr.NewValidationError(path, "value %v exceeds maximum %v", f, max)
		}
	}

	if minVal, ok := schemaObj.Get("minimum"); ok {
		min, _ := jsondoc.AsFloat(minVal)
		exclusive := boolSibling(schemaObj, "exclusiveMinimum")
		if exclusive {
			if f <= min {
				return jserr.NewValidationError(path, "value %v is not strictly above exclusive minimum %v", f, min)
			}
		} else if f < min {
			return jserr.NewValidationError(path, "value %v is below minimum %v", f, min)
		}
	}

	return nil
}

// boolSibling reads a Draft-4-style boolean sibling keyword such as
// exclusiveMaximum/exclusiveMinimum, which modify maximum/minimum in
// place rather than carrying their own numeric bound.
func boolSibling(schemaObj *orderedmap.OrderedMap, key string) bool {
	v, ok := schemaObj.Get(key)
	if !ok {
		return false
	}
	b, _ := jsondoc.AsBool(v)
	return b
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func propPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
