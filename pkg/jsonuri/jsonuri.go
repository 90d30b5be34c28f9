// Package jsonuri implements the URI algebra used to identify sub-schemas
// within a schema corpus: an absolute base URL paired with a JSON Pointer
// fragment, comparable and usable as a map key.
package jsonuri

import (
	"net/url"
	"strings"
)

// URI identifies a sub-schema: an absolute base document identifier plus a
// JSON Pointer into that document. Two URIs are the same sub-schema iff
// both fields compare equal, so URI is deliberately a plain comparable
// struct usable directly as a map key.
type URI struct {
	Base    string
	Pointer string
}

// Root is the canonical identifier for the entry schema of a document: an
// empty base (the default document) and the empty pointer, rendered as "#".
var Root = URI{Base: "", Pointer: ""}

// Parse splits a reference string into base and fragment. "#/a/b" has an
// empty base and pointer "/a/b"; "http://x/y#/a" has base "http://x/y" and
// pointer "/a"; "http://x/y" (no fragment at all) has an empty pointer.
func Parse(ref string) (URI, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return URI{}, err
	}
	u2 := *u
	frag := u2.Fragment
	u2.Fragment = ""
	u2.RawFragment = ""
	return URI{Base: u2.String(), Pointer: frag}, nil
}

// Derive resolves ref against u, following the same rule as the underlying
// URI standard: a reference with empty authority and path ("#/a/b") keeps
// u's Base and replaces only the Pointer; any other reference replaces both
// Base and Pointer (resetting Pointer to the new reference's fragment, or
// empty if none is present).
func (u URI) Derive(ref string) (URI, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return URI{}, err
	}
	if r.Scheme == "" && r.Opaque == "" && r.Host == "" && r.Path == "" && r.RawQuery == "" {
		return URI{Base: u.Base, Pointer: r.Fragment}, nil
	}
	base, err := url.Parse(u.Base)
	if err != nil {
		// u.Base was produced by Parse or Derive, so it is always valid;
		// this branch exists only to keep the function total.
		base = &url.URL{}
	}
	resolved := base.ResolveReference(r)
	frag := resolved.Fragment
	resolved2 := *resolved
	resolved2.Fragment = ""
	resolved2.RawFragment = ""
	return URI{Base: resolved2.String(), Pointer: frag}, nil
}

// Append extends u's pointer by one already-escaped segment.
func (u URI) Append(seg string) URI {
	return URI{Base: u.Base, Pointer: u.Pointer + "/" + seg}
}

// Escape transforms an object key into a JSON Pointer segment: "~" becomes
// "~0" and "/" becomes "~1", in that order.
func Escape(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

// URL reports u's base document identifier, ignoring the pointer. Two URIs
// with the same URL belong to the same loaded document.
func (u URI) URL() string {
	return u.Base
}

// String renders u in canonical textual form: "base#pointer".
func (u URI) String() string {
	if u.Pointer == "" {
		return u.Base + "#"
	}
	return u.Base + "#" + u.Pointer
}

// Less gives URI a total order: lexicographic on (Base, Pointer).
func (u URI) Less(other URI) bool {
	if u.Base != other.Base {
		return u.Base < other.Base
	}
	return u.Pointer < other.Pointer
}

// IsRoot reports whether u is the bare "#" identifier of its document.
func (u URI) IsRoot() bool {
	return u.Pointer == ""
}
