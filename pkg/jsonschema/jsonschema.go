// Package jsonschema is the public entry point: a Validator that ingests
// schema documents, tracks unresolved external references, and validates
// instances against the resulting corpus.
package jsonschema

import (
	"fmt"

	motmedelErrors "github.com/Motmedel/utils_go/pkg/errors"

	"github.com/pawelmaslanka/json-schema-validator/internal/corpus"
	"github.com/pawelmaslanka/json-schema-validator/internal/jserr"
	"github.com/pawelmaslanka/json-schema-validator/internal/loader"
	"github.com/pawelmaslanka/json-schema-validator/internal/validate"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsondoc"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsonuri"
)

// Validator is a schema corpus plus the instance validator bound to it.
type Validator struct {
	corpus *corpus.Corpus
	engine *validate.Validator
}

// New returns an empty Validator with no schemas ingested.
func New() *Validator {
	c := corpus.New()
	return &Validator{
		corpus: c,
		engine: validate.New(c.Lookup),
	}
}

// EnableDefaultValueInsertion turns on or off the side effect of filling
// in missing object properties from their schema's "default" during
// Validate.
func (v *Validator) EnableDefaultValueInsertion(enabled bool) {
	v.engine.EnableDefaultValueInsertion(enabled)
}

// InsertSchema parses data as a JSON schema document and ingests it under
// uriStr (commonly "#" for the root schema, or an absolute URL for a
// document that satisfies another schema's external $ref). It returns the
// set of external reference strings that still need to be ingested before
// this document can be committed to the corpus; an empty, non-nil set
// means this document committed successfully. A document that an earlier
// call returned as pending is not committed by this call; it is committed
// only when it is inserted again.
func (v *Validator) InsertSchema(data []byte, uriStr string) (map[string]struct{}, error) {
	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err))
	}
	uri, err := jsonuri.Parse(uriStr)
	if err != nil {
		return nil, motmedelErrors.NewWithTrace(fmt.Errorf("parse schema uri: %w", err))
	}
	return loader.Insert(v.corpus, doc, uri)
}

// SetRootSchema ingests data as the root schema ("#"). Unlike InsertSchema,
// it requires the schema to be fully closed: any external reference is an
// error rather than data returned for later resolution.
func (v *Validator) SetRootSchema(data []byte) error {
	pending, err := v.InsertSchema(data, "#")
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return jserr.NewSchemaError("root schema has unresolved external references: %v", keys(pending))
	}
	return nil
}

// Validate checks instance against the stored root schema, failing on the
// first violation found. It fails if no root schema has been installed.
func (v *Validator) Validate(data []byte) error {
	root, ok := v.corpus.Root()
	if !ok {
		return jserr.NewSchemaError("no root schema installed")
	}
	instance, err := jsondoc.Parse(data)
	if err != nil {
		return motmedelErrors.NewWithTrace(fmt.Errorf("json unmarshal: %w", err))
	}
	return v.engine.Validate(instance, root, "root")
}

// ValidateValue checks an already-decoded instance (as produced by
// pkg/jsondoc.Parse) against the stored root schema. Use this to observe
// default-value insertion on the caller's own document value, since
// Validate only ever mutates a document it decoded itself.
func (v *Validator) ValidateValue(instance any) error {
	root, ok := v.corpus.Root()
	if !ok {
		return jserr.NewSchemaError("no root schema installed")
	}
	return v.engine.Validate(instance, root, "root")
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
