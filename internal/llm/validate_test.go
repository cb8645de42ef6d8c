package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-person",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "minLength": 1},
				"age":  map[string]any{"type": "integer", "minimum": 0},
			},
			"required":             []string{"name", "age"},
			"additionalProperties": false,
		},
	}
}

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid", `{"name":"Ada","age":36}`, false},
		{"missing required field", `{"name":"Ada"}`, true},
		{"wrong type", `{"name":"Ada","age":"old"}`, true},
		{"extra field", `{"name":"Ada","age":36,"city":"London"}`, true},
		{"empty name", `{"name":"","age":36}`, true},
		{"not JSON", `here is your answer: {...}`, true},
		{"JSON array instead of object", `[1,2,3]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(testSchema(), json.RawMessage(tt.content))
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
				if string(inv.Content) != tt.content {
					t.Errorf("error does not carry the rejected content: %s", inv.Content)
				}
			}
		})
	}
}

func TestValidateContent_NilSchema(t *testing.T) {
	if err := ValidateContent(nil, json.RawMessage(`anything goes`)); err != nil {
		t.Fatalf("nil schema should accept any content, got %v", err)
	}
}

func TestValidateContent_CompiledSchemaReused(t *testing.T) {
	s := testSchema()
	for i := 0; i < 3; i++ {
		if err := ValidateContent(s, json.RawMessage(`{"name":"Ada","age":36}`)); err != nil {
			t.Fatalf("pass %d: unexpected error: %v", i, err)
		}
	}
}
