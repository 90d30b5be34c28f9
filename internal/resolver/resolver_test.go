package resolver

import (
	"testing"

	"github.com/pawelmaslanka/json-schema-validator/pkg/jsondoc"
	"github.com/pawelmaslanka/json-schema-validator/pkg/jsonuri"
)

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := jsondoc.Parse([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestResolveBindsNestedProperties(t *testing.T) {
	doc := mustParse(t, `{"type":"object","properties":{"name":{"type":"string"}}}`)
	res, err := Resolve(doc, jsonuri.Root)
	if err != nil {
		t.Fatal(err)
	}
	nameURI := jsonuri.Root.Append(jsonuri.Escape("properties")).Append(jsonuri.Escape("name"))
	if _, ok := res.Bindings[nameURI]; !ok {
		t.Errorf("expected binding at %v, got %v", nameURI, res.Bindings)
	}
	if _, ok := res.Bindings[jsonuri.Root]; !ok {
		t.Error("expected root binding")
	}
}

func TestResolveLocalRefMustExist(t *testing.T) {
	doc := mustParse(t, `{"properties":{"a":{"$ref":"#/definitions/missing"}}}`)
	_, err := Resolve(doc, jsonuri.Root)
	if err == nil {
		t.Fatal("expected error for missing local $ref target")
	}
}

func TestResolveLocalRefResolves(t *testing.T) {
	doc := mustParse(t, `{"definitions":{"x":{"type":"string"}},"properties":{"a":{"$ref":"#/definitions/x"}}}`)
	res, err := Resolve(doc, jsonuri.Root)
	if err != nil {
		t.Fatal(err)
	}
	defX := jsonuri.Root.Append("definitions").Append("x")
	if _, ok := res.Bindings[defX]; !ok {
		t.Fatal("expected definitions/x binding")
	}
}

func TestResolveExternalRef(t *testing.T) {
	doc := mustParse(t, `{"properties":{"a":{"$ref":"http://other/s2#"}}}`)
	res, err := Resolve(doc, jsonuri.Root)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.External["http://other/s2#"]; !ok {
		t.Errorf("expected external ref, got %v", res.External)
	}
}

func TestResolveTopLevelIDMatchingIngestionURIIsNotDuplicate(t *testing.T) {
	doc := mustParse(t, `{"id":"#","properties":{"a":{"type":"string"}}}`)
	_, err := Resolve(doc, jsonuri.Root)
	if err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaultNotDescended(t *testing.T) {
	doc := mustParse(t, `{"properties":{"w":{"type":"integer","default":{"$ref":"#/nonexistent"}}}}`)
	_, err := Resolve(doc, jsonuri.Root)
	if err != nil {
		t.Fatalf("default value should not be walked as a schema: %v", err)
	}
}

func TestResolveLocalRefUnderTopLevelID(t *testing.T) {
	doc := mustParse(t, `{"id":"http://mydoc#","definitions":{"x":{"type":"string"}},"$ref":"#/definitions/x"}`)
	res, err := Resolve(doc, jsonuri.Root)
	if err != nil {
		t.Fatalf("expected a self-contained document with a renaming top-level id to resolve, got %v", err)
	}
	if len(res.External) != 0 {
		t.Errorf("expected no external refs, got %v", res.External)
	}
	defX := jsonuri.URI{Base: "http://mydoc", Pointer: "/definitions/x"}
	if _, ok := res.Bindings[defX]; !ok {
		t.Errorf("expected binding at %v, got %v", defX, res.Bindings)
	}
}

func TestResolveRewritesRefToAbsolute(t *testing.T) {
	doc := mustParse(t, `{"definitions":{"x":{"type":"string"}},"properties":{"a":{"$ref":"#/definitions/x"}}}`)
	if _, err := Resolve(doc, jsonuri.Root); err != nil {
		t.Fatal(err)
	}
	obj, _ := jsondoc.AsObject(doc)
	props, _ := obj.Get("properties")
	propsObj, _ := jsondoc.AsObject(props)
	a, _ := propsObj.Get("a")
	aObj, _ := jsondoc.AsObject(a)
	ref, _ := aObj.Get("$ref")
	refStr, _ := jsondoc.AsString(ref)
	if refStr != "#/definitions/x" {
		t.Errorf("$ref not rewritten to absolute form: %q", refStr)
	}
}
