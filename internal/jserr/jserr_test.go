package jserr

import "testing"

func TestValidationErrorFormatting(t *testing.T) {
	err := NewValidationError("root.age", "value %v below minimum %v", 1, 2)
	if err.Error() != "root.age: value 1 below minimum 2" {
		t.Errorf("Error() = %q", err.Error())
	}
	bare := NewValidationError("", "root schema not set")
	if bare.Error() != "root schema not set" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestUnsupported(t *testing.T) {
	err := Unsupported("allOf")
	if err.Error() != `keyword "allOf" is not implemented` {
		t.Errorf("Error() = %q", err.Error())
	}
}
