// Package resolver implements the single pre-order walk that assigns every
// sub-schema of one freshly loaded document a canonical URI, rewrites its
// $ref strings to absolute form, and reports which references still need
// to be satisfied by further ingestion. It mirrors the interleaved
// id-rebasing / $ref-rewriting pass of the original resolver this module
// is descended from: URI assignment and reference rewriting happen in the
// same pre-order pass, not in two separate passes.
package resolver

import (
	"fmt"

	"github.com/pawelmaslanka/json-schema-validator/internal/jserr"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsondoc"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsonuri"
)

// Result is the outcome of resolving one schema document.
type Result struct {
	// Bindings maps every sub-schema URI discovered in the document to its
	// node.
	Bindings map[jsonuri.URI]any
	// External holds $ref targets whose base differs from the document's
	// own base: references the caller must separately ingest.
	External map[string]struct{}
}

// Resolve walks doc in pre-order starting at uri, the URI under which the
// caller intends to ingest it. It returns the bindings produced and any
// external references found, or a *jserr.SchemaError if the document
// contains a structural problem (duplicate sub-schema URI, or a local
// $ref with no matching node anywhere in the document).
func Resolve(doc any, uri jsonuri.URI) (*Result, error) {
	bindings := make(map[jsonuri.URI]any)
	allRefs := make(map[string]struct{})

	// The document's own base for the purpose of the local/external
	// partition below is its top-level "id", rebased against the ingestion
	// URI, not the ingestion URI itself: a document that renames itself via
	// a top-level id must have its local $refs compared against that new
	// base, or a purely local $ref would be misclassified as external.
	rootURI := uri
	if obj, ok := jsondoc.AsObject(doc); ok {
		if idVal, ok := obj.Get("id"); ok {
			if idStr, ok := jsondoc.AsString(idVal); ok {
				derived, err := uri.Derive(idStr)
				if err != nil {
					return nil, jserr.NewSchemaError("invalid id %q: %v", idStr, err)
				}
				rootURI = derived
			}
		}
	}

	if err := walk(doc, uri, bindings, allRefs); err != nil {
		return nil, err
	}

	external := make(map[string]struct{})
	for ref := range allRefs {
		refURI, err := jsonuri.Parse(ref)
		if err != nil {
			return nil, jserr.NewSchemaError("invalid $ref %q: %v", ref, err)
		}
		if refURI.Base != rootURI.Base {
			external[ref] = struct{}{}
			continue
		}
		if _, ok := bindings[refURI]; !ok {
			return nil, jserr.NewSchemaError("missing local sub-schema for $ref %q", ref)
		}
	}

	return &Result{Bindings: bindings, External: external}, nil
}

func walk(node any, uri jsonuri.URI, bindings map[jsonuri.URI]any, refs map[string]struct{}) error {
	obj, isObject := jsondoc.AsObject(node)
	if !isObject {
		// A non-object schema (e.g. a boolean schema) still occupies its
		// URI slot but has no children to descend into.
		if _, exists := bindings[uri]; exists {
			return jserr.NewSchemaError("duplicate sub-schema uri %q", uri.String())
		}
		bindings[uri] = node
		return nil
	}

	if idVal, ok := obj.Get("id"); ok {
		if idStr, ok := jsondoc.AsString(idVal); ok {
			derived, err := uri.Derive(idStr)
			if err != nil {
				return jserr.NewSchemaError("invalid id %q: %v", idStr, err)
			}
			uri = derived
		}
	}

	if _, exists := bindings[uri]; exists {
		return jserr.NewSchemaError("duplicate sub-schema uri %q", uri.String())
	}
	bindings[uri] = node

	for _, key := range obj.Keys() {
		if key == "default" {
			continue
		}
		child, _ := obj.Get(key)

		if key == "$ref" {
			if refStr, ok := jsondoc.AsString(child); ok {
				absolute, err := uri.Derive(refStr)
				if err != nil {
					return jserr.NewSchemaError("invalid $ref %q: %v", refStr, err)
				}
				absoluteStr := absolute.String()
				obj.Set("$ref", absoluteStr)
				refs[absoluteStr] = struct{}{}
			}
			continue
		}

		switch {
		case jsondoc.KindOf(child) == jsondoc.KindObject:
			childURI := uri.Append(jsonuri.Escape(key))
			if err := walk(child, childURI, bindings, refs); err != nil {
				return err
			}
		case jsondoc.KindOf(child) == jsondoc.KindArray:
			arr, _ := jsondoc.AsArray(child)
			for i, elem := range arr {
				if jsondoc.KindOf(elem) != jsondoc.KindObject {
					continue
				}
				elemURI := uri.Append(jsonuri.Escape(key)).Append(fmt.Sprintf("%d", i))
				if err := walk(elem, elemURI, bindings, refs); err != nil {
					return err
				}
			}
		}
	}

	return nil
}
