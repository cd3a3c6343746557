package schema

import "testing"

func TestValidateEnumOK(t *testing.T) {
	err := Validate(KindEnum, map[string]any{
		"possible_values": []any{"Enabled", "Disabled"},
		"default_values":  []any{"Enabled"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMissingKey(t *testing.T) {
	err := Validate(KindEnum, map[string]any{
		"possible_values": []any{"Enabled"},
	})
	if err == nil {
		t.Fatalf("expected error for missing default_values")
	}
	ve, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Key != "default_values" {
		t.Fatalf("unexpected key in error: %q", ve.Key)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	err := Validate(KindInteger, map[string]any{
		"lower_bound":      "0",
		"upper_bound":      float64(100),
		"scalar_increment": float64(1),
	})
	if err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

func TestValidateUnknownKind(t *testing.T) {
	if err := Validate("bogus", map[string]any{}); err == nil {
		t.Fatalf("expected unknown-kind error")
	}
}

func TestValidateNullValue(t *testing.T) {
	err := Validate(KindString, map[string]any{
		"encoding":   "ASCII",
		"min_length": nil,
		"max_length": float64(10),
	})
	if err == nil {
		t.Fatalf("expected null-value error")
	}
}
