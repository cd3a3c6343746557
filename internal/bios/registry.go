package bios

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	logs "github.com/danmuck/smplog"

	"github.com/danmuck/pldmd/internal/schema"
)

const (
	enumFile    = "enum_attrs.json"
	stringFile  = "string_attrs.json"
	integerFile = "integer_attrs.json"
)

// Registry holds every ingested BIOS attribute, keyed by attribute name
// within its kind.
type Registry struct {
	mu       sync.RWMutex
	enums    map[string]EnumAttribute
	strings  map[string]StringAttribute
	integers map[string]IntegerAttribute
	setup    bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		enums:    make(map[string]EnumAttribute),
		strings:  make(map[string]StringAttribute),
		integers: make(map[string]IntegerAttribute),
	}
}

// SetupConfig loads enum_attrs.json, string_attrs.json, and
// integer_attrs.json from dir. It is idempotent: a call after the
// registry has already been populated is a no-op, matching the original
// responder's re-run-safe setupConfig behavior. Each file is isolated: a
// parse or validation failure in one logs and moves on to the next. If
// the three files together produce zero attributes, SetupConfig reports
// ErrEmptyRegistry, matching setupConfig()'s -1 return in the original
// responder for a missing or entirely empty BIOS directory.
func (r *Registry) SetupConfig(dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setup {
		return nil
	}

	r.loadEnumFile(filepath.Join(dir, enumFile))
	r.loadStringFile(filepath.Join(dir, stringFile))
	r.loadIntegerFile(filepath.Join(dir, integerFile))

	if len(r.enums)+len(r.strings)+len(r.integers) == 0 {
		return ErrEmptyRegistry
	}

	r.setup = true
	return nil
}

func readEntries(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Registry) loadEnumFile(path string) {
	entries, err := readEntries(path)
	if err != nil {
		logs.Errf("bios: skip %s: %v", path, err)
		return
	}
	for _, fields := range entries {
		name, _ := fields["attribute_name"].(string)
		if err := schema.Validate(schema.KindEnum, fields); err != nil {
			logs.Errf("bios: skip enum attribute %q in %s: %v", name, path, err)
			continue
		}
		attr := EnumAttribute{
			Name:           name,
			ReadOnly:       boolField(fields, "read_only"),
			PossibleValues: stringSliceField(fields, "possible_values"),
			DefaultValues:  stringSliceField(fields, "default_values"),
			DBusValueMap:   stringMapField(fields, "dbus_value_map"),
		}
		r.enums[attr.Name] = attr
	}
}

func (r *Registry) loadStringFile(path string) {
	entries, err := readEntries(path)
	if err != nil {
		logs.Errf("bios: skip %s: %v", path, err)
		return
	}
	for _, fields := range entries {
		name, _ := fields["attribute_name"].(string)
		if err := schema.Validate(schema.KindString, fields); err != nil {
			logs.Errf("bios: skip string attribute %q in %s: %v", name, path, err)
			continue
		}
		attr := StringAttribute{
			Name:          name,
			ReadOnly:      boolField(fields, "read_only"),
			Encoding:      stringField(fields, "encoding"),
			MinLength:     intField(fields, "min_length"),
			MaxLength:     intField(fields, "max_length"),
			DefaultLength: intField(fields, "default_length"),
			Default:       stringField(fields, "default"),
		}
		r.strings[attr.Name] = attr
	}
}

func (r *Registry) loadIntegerFile(path string) {
	entries, err := readEntries(path)
	if err != nil {
		logs.Errf("bios: skip %s: %v", path, err)
		return
	}
	for _, fields := range entries {
		name, _ := fields["attribute_name"].(string)
		if err := schema.Validate(schema.KindInteger, fields); err != nil {
			logs.Errf("bios: skip integer attribute %q in %s: %v", name, path, err)
			continue
		}
		attr := IntegerAttribute{
			Name:            name,
			ReadOnly:        boolField(fields, "read_only"),
			LowerBound:      int64Field(fields, "lower_bound"),
			UpperBound:      int64Field(fields, "upper_bound"),
			ScalarIncrement: int64Field(fields, "scalar_increment"),
			Default:         int64Field(fields, "default"),
		}
		if !attr.scalarIncrementDividesRange() {
			logs.Errf("bios: skip integer attribute %q in %s: scalar_increment does not divide range", name, path)
			continue
		}
		r.integers[attr.Name] = attr
	}
}

// GetEnumAttribute looks up an enumeration attribute by name.
func (r *Registry) GetEnumAttribute(name string) (EnumAttribute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.enums[name]
	return a, ok
}

// GetStringAttribute looks up a string attribute by name.
func (r *Registry) GetStringAttribute(name string) (StringAttribute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.strings[name]
	return a, ok
}

// GetIntegerAttribute looks up an integer attribute by name.
func (r *Registry) GetIntegerAttribute(name string) (IntegerAttribute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.integers[name]
	return a, ok
}

// Count reports how many attributes of each kind are loaded, for
// admin/metrics reporting.
func (r *Registry) Count() (enums, strings, integers int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.enums), len(r.strings), len(r.integers)
}

func boolField(fields map[string]any, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

func stringField(fields map[string]any, key string) string {
	v, _ := fields[key].(string)
	return v
}

func intField(fields map[string]any, key string) int {
	v, _ := fields[key].(float64)
	return int(v)
}

func int64Field(fields map[string]any, key string) int64 {
	v, _ := fields[key].(float64)
	return int64(v)
}

func stringSliceField(fields map[string]any, key string) []string {
	raw, _ := fields[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringMapField(fields map[string]any, key string) map[string]string {
	raw, _ := fields[key].(map[string]any)
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
