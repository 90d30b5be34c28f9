// Package loader implements the ingestion contract: run the resolver over
// one schema document, and either hand back the set of external
// references still needed or commit the document to the corpus.
package loader

import (
	"github.com/pawelmaslanka/json-schema-validator/internal/corpus"
	"github.com/pawelmaslanka/json-schema-validator/internal/resolver"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsonuri"
)

// Insert resolves doc under uri and, if every reference it makes is either
// local-and-satisfied or already known to c, commits it. It returns the
// set of external reference strings that still need to be ingested before
// this document can be committed; a non-nil, empty set (as opposed to nil)
// signals success. The corpus is left unchanged unless insertion succeeds.
func Insert(c *corpus.Corpus, doc any, uri jsonuri.URI) (map[string]struct{}, error) {
	res, err := resolver.Resolve(doc, uri)
	if err != nil {
		return nil, err
	}

	pending := make(map[string]struct{})
	for ref := range res.External {
		refURI, err := jsonuri.Parse(ref)
		if err != nil {
			return nil, err
		}
		if _, ok := c.Lookup(refURI); !ok {
			pending[ref] = struct{}{}
		}
	}
	if len(pending) > 0 {
		return pending, nil
	}

	if err := c.Commit(uri, doc, res.Bindings); err != nil {
		return nil, err
	}
	return map[string]struct{}{}, nil
}
