package jsonschema

import (
	"testing"

	"github.com/pawelmaslanka/json-schema-validator/pkg/jsondoc"
)

func TestPersonAgeScenario(t *testing.T) {
	v := New()
	schema := `{"type":"object","properties":{"name":{"type":"string"},"age":{"type":"number","minimum":2,"maximum":200}},"required":["name","age"]}`
	if err := v.SetRootSchema([]byte(schema)); err != nil {
		t.Fatal(err)
	}
	if err := v.Validate([]byte(`{"age":42}`)); err == nil {
		t.Error("expected failure: name required")
	}
	if err := v.Validate([]byte(`{"name":"Albert","age":42}`)); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestNumericBoundsScenario(t *testing.T) {
	v := New()
	schema := `{"type":"integer","minimum":0,"maximum":10,"exclusiveMaximum":true}`
	if err := v.SetRootSchema([]byte(schema)); err != nil {
		t.Fatal(err)
	}
	for _, ok := range []string{"0", "9"} {
		if err := v.Validate([]byte(ok)); err != nil {
			t.Errorf("value %s: expected success, got %v", ok, err)
		}
	}
	for _, bad := range []string{"10", "-1"} {
		if err := v.Validate([]byte(bad)); err == nil {
			t.Errorf("value %s: expected failure", bad)
		}
	}
}

func TestArrayItemsScenario(t *testing.T) {
	v := New()
	schema := `{"type":"array","items":[{"type":"string"},{"type":"number"}],"additionalItems":false}`
	if err := v.SetRootSchema([]byte(schema)); err != nil {
		t.Fatal(err)
	}
	if err := v.Validate([]byte(`["a",1]`)); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if err := v.Validate([]byte(`["a",1,true]`)); err == nil {
		t.Error("expected failure for extra item")
	}
	if err := v.Validate([]byte(`[1,"a"]`)); err == nil {
		t.Error("expected failure for swapped types")
	}
}

func TestPatternPropertiesScenario(t *testing.T) {
	v := New()
	schema := `{"patternProperties":{"^x-":{"type":"string"}},"additionalProperties":false}`
	if err := v.SetRootSchema([]byte(schema)); err != nil {
		t.Fatal(err)
	}
	if err := v.Validate([]byte(`{"x-foo":"bar"}`)); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if err := v.Validate([]byte(`{"x-foo":1}`)); err == nil {
		t.Error("expected failure for wrong type")
	}
	if err := v.Validate([]byte(`{"y":"z"}`)); err == nil {
		t.Error("expected failure for unmatched property")
	}
}

func TestDefaultInsertionScenario(t *testing.T) {
	v := New()
	v.EnableDefaultValueInsertion(true)
	schema := `{"properties":{"width":{"type":"integer","default":20},"height":{"type":"integer","default":10}}}`
	if err := v.SetRootSchema([]byte(schema)); err != nil {
		t.Fatal(err)
	}
	instance, err := jsondoc.Parse([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := v.ValidateValue(instance); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	obj, ok := jsondoc.AsObject(instance)
	if !ok {
		t.Fatal("expected object instance")
	}
	if w, _ := obj.Get("width"); w != float64(20) {
		t.Errorf("width = %v, want 20", w)
	}
	if h, _ := obj.Get("height"); h != float64(10) {
		t.Errorf("height = %v, want 10", h)
	}
}

func TestExternalReferenceIngestionScenario(t *testing.T) {
	v := New()
	s1 := `{"properties":{"a":{"$ref":"http://other/s2#"}}}`
	pending, err := v.InsertSchema([]byte(s1), "#")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := pending["http://other/s2#"]; !ok {
		t.Fatalf("expected pending external ref, got %v", pending)
	}

	s2 := `{"type":"string"}`
	pending2, err := v.InsertSchema([]byte(s2), "http://other/s2#")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending2) != 0 {
		t.Fatalf("expected no pending refs, got %v", pending2)
	}

	pendingRoot, err := v.InsertSchema([]byte(s1), "#")
	if err != nil {
		t.Fatal(err)
	}
	if len(pendingRoot) != 0 {
		t.Fatalf("expected root to finally commit, got %v", pendingRoot)
	}

	if err := v.Validate([]byte(`{"a":"hello"}`)); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if err := v.Validate([]byte(`{"a":1}`)); err == nil {
		t.Error("expected failure: a must be a string per external schema")
	}
}

func TestRootSchemaWithRenamingTopLevelID(t *testing.T) {
	v := New()
	schema := `{"id":"http://mydoc#","definitions":{"x":{"type":"string"}},"$ref":"#/definitions/x"}`
	if err := v.SetRootSchema([]byte(schema)); err != nil {
		t.Fatalf("expected self-contained schema with renaming id to close, got %v", err)
	}
	if err := v.Validate([]byte(`"hello"`)); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if err := v.Validate([]byte(`1`)); err == nil {
		t.Error("expected failure for wrong type through renamed root $ref")
	}
}

func TestValidateWithoutRootSchemaFails(t *testing.T) {
	v := New()
	if err := v.Validate([]byte(`{}`)); err == nil {
		t.Error("expected failure when no root schema is installed")
	}
}
