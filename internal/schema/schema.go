// Package schema validates the shape of decoded BIOS JSON descriptor
// entries before they are handed to their kind-specific setup routine:
// each kind lists required fields and their types, checked against JSON's
// dynamic map[string]any shape.
package schema

import (
	"fmt"
	"reflect"

	logs "github.com/danmuck/smplog"
)

// Kind names the attribute kinds a BIOS descriptor entry may declare.
const (
	KindEnum    = "enum"
	KindString  = "string"
	KindInteger = "integer"
)

// Requirement names one required key and the reflect.Kind its decoded
// JSON value must have.
type Requirement struct {
	Key  string
	Kind reflect.Kind
}

// ValidationError reports a missing or mistyped key for a descriptor kind.
type ValidationError struct {
	DescriptorKind string
	Key            string
	Reason         string
}

func (e ValidationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("schema: kind=%s: %s", e.DescriptorKind, e.Reason)
	}
	return fmt.Sprintf("schema: kind=%s key=%s: %s", e.DescriptorKind, e.Key, e.Reason)
}

var requirements = map[string][]Requirement{
	KindEnum: {
		{"possible_values", reflect.Slice},
		{"default_values", reflect.Slice},
	},
	KindString: {
		{"encoding", reflect.String},
		{"min_length", reflect.Float64},
		{"max_length", reflect.Float64},
	},
	KindInteger: {
		{"lower_bound", reflect.Float64},
		{"upper_bound", reflect.Float64},
		{"scalar_increment", reflect.Float64},
	},
}

// Validate enforces required keys and required value kinds for a
// descriptor kind. Unknown keys in fields are ignored by design; JSON
// ingestion tolerates additional metadata a future schema revision might
// add.
func Validate(kind string, fields map[string]any) error {
	logs.Debugf("schema.Validate kind=%s fields=%d", kind, len(fields))
	reqs, ok := requirements[kind]
	if !ok {
		logs.Errf("schema.Validate unknown kind=%s", kind)
		return ValidationError{DescriptorKind: kind, Reason: "unknown descriptor kind"}
	}
	for _, req := range reqs {
		raw, found := fields[req.Key]
		if !found {
			logs.Errf("schema.Validate missing key kind=%s key=%s", kind, req.Key)
			return ValidationError{DescriptorKind: kind, Key: req.Key, Reason: "missing required key"}
		}
		if raw == nil {
			logs.Errf("schema.Validate nil value kind=%s key=%s", kind, req.Key)
			return ValidationError{DescriptorKind: kind, Key: req.Key, Reason: "value is null"}
		}
		if got := reflect.TypeOf(raw).Kind(); got != req.Kind {
			logs.Errf(
				"schema.Validate type mismatch kind=%s key=%s got=%s want=%s",
				kind, req.Key, got, req.Kind,
			)
			return ValidationError{DescriptorKind: kind, Key: req.Key, Reason: "type mismatch"}
		}
	}
	logs.Infof("schema.Validate ok kind=%s", kind)
	return nil
}
