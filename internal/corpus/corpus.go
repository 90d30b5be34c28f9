// Package corpus is the schema store: it owns ingested schema documents
// and maps canonical sub-schema URIs to the nodes within them. Mutations
// are guarded by a mutex so a single Corpus can be shared by a loader and
// concurrent validators, so long as no validation runs concurrently with
// an ingestion (see the module's concurrency notes).
package corpus

import (
	"sync"

	"github.com/pawelmaslanka/json-schema-validator/internal/jserr"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsonuri"
)

// Corpus holds every schema document ingested so far and the URI -> node
// bindings produced for them.
type Corpus struct {
	mu       sync.Mutex
	bindings map[jsonuri.URI]any
	docs     []any
	rootNode any
	haveRoot bool
}

// New returns an empty Corpus.
func New() *Corpus {
	return &Corpus{bindings: make(map[jsonuri.URI]any)}
}

// Lookup returns the node bound to u, if any.
func (c *Corpus) Lookup(u jsonuri.URI) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.bindings[u]
	return n, ok
}

// Root returns the document committed under the "#" URI, if a root has
// been set. This is the document itself rather than a lookup through
// bindings, so a document that renames itself via a top-level "id" is
// still found as the root: the ingestion URI determines rootness, not
// where the resolver ends up binding the rebased URI.
func (c *Corpus) Root() (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.haveRoot {
		return nil, false
	}
	return c.rootNode, true
}

// HasRoot reports whether a root schema has been committed.
func (c *Corpus) HasRoot() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.haveRoot
}

// Commit atomically adds doc and its bindings to the corpus. It fails,
// leaving the corpus unchanged, if any URI in bindings collides with an
// existing binding (invariant 2 of the corpus data model: a URI is bound
// at most once, and a colliding ingestion fails as a whole).
func (c *Corpus) Commit(uri jsonuri.URI, doc any, bindings map[jsonuri.URI]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for u := range bindings {
		if _, exists := c.bindings[u]; exists {
			return jserr.NewSchemaError("duplicate sub-schema uri %q", u.String())
		}
	}

	for u, n := range bindings {
		c.bindings[u] = n
	}
	c.docs = append(c.docs, doc)
	if uri == jsonuri.Root {
		c.rootNode = doc
		c.haveRoot = true
	}
	return nil
}

// KnownBase reports whether any binding already exists under the given
// document base, i.e. whether that document has already been ingested.
func (c *Corpus) KnownBase(base string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for u := range c.bindings {
		if u.Base == base {
			return true
		}
	}
	return false
}
