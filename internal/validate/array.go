package validate

import (
	"github.com/iancoleman/orderedmap"

	"github.com/pawelmaslanka/json-schema-validator/internal/jserr"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsondoc"
)

func (v *Validator) validateArray(instance any, schemaObj *orderedmap.OrderedMap, path string) error {
	arr, _ := jsondoc.AsArray(instance)

	if maxItemsVal, ok := schemaObj.Get("maxItems"); ok {
		maxItems, _ := jsondoc.AsFloat(maxItemsVal)
		if float64(len(arr)) > maxItems {
			return jserr.NewValidationError(path, "array has %d items, exceeds maxItems %v", len(arr), maxItems)
		}
	}
	if minItemsVal, ok := schemaObj.Get("minItems"); ok {
		minItems, _ := jsondoc.AsFloat(minItemsVal)
		if float64(len(arr)) < minItems {
			return jserr.NewValidationError(path, "array has %d items, below minItems %v", len(arr), minItems)
		}
	}

	if uniqueVal, ok := schemaObj.Get("uniqueItems"); ok {
		if unique, _ := jsondoc.AsBool(uniqueVal); unique {
			for i := 0; i < len(arr); i++ {
				for j := i + 1; j < len(arr); j++ {
					if jsondoc.Equal(arr[i], arr[j]) {
						return jserr.NewValidationError(path, "items at index %d and %d are not unique", i, j)
					}
				}
			}
		}
	}

	itemsVal, hasItems := schemaObj.Get("items")
	if !hasItems {
		return nil
	}

	if itemsArr, ok := jsondoc.AsArray(itemsVal); ok {
		additionalVal, hasAdditional := schemaObj.Get("additionalItems")
		for i, elem := range arr {
			if i < len(itemsArr) {
				if err := v.Validate(elem, itemsArr[i], indexPath(path, i)); err != nil {
					return err
				}
				continue
			}
			if !hasAdditional {
				// additionalItems absent: positional schemas exhausted,
				// remaining elements are accepted with no further check.
				return nil
			}
			if b, isBool := jsondoc.AsBool(additionalVal); isBool {
				if !b {
					return jserr.NewValidationError(indexPath(path, i), "additional item not allowed beyond positional items")
				}
				// additionalItems: true - accept and stop, matching the
				// joint items/additionalItems rule.
				return nil
			}
			if err := v.Validate(elem, additionalVal, indexPath(path, i)); err != nil {
				return err
			}
		}
		return nil
	}

	// items is a single schema: every element is validated against it.
	for i, elem := range arr {
		if err := v.Validate(elem, itemsVal, indexPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}
