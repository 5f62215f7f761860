package dataset

import (
	"encoding/json"
	"fmt"
	"maps"
	"path"
	"slices"

	"gopkg.in/yaml.v3"
)

// document is a structured data file split into its top-level groups, so
// each group decodes, or fails, on its own.
type document struct {
	name     string
	prefix   string
	isYAML   bool
	json     map[string]json.RawMessage
	yaml     map[string]yaml.Node
	problems *[]error
}

func parseDocument(name string, data []byte) (*document, error) {
	d := &document{name: name, problems: new([]error)}
	switch path.Ext(name) {
	case ".yaml", ".yml":
		d.isYAML = true
		if err := yaml.Unmarshal(data, &d.yaml); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(data, &d.json); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
	}
	return d, nil
}

// decode reports whether key was present and, if so, whether it decoded.
func (d *document) decode(key string, v any) (bool, error) {
	if d == nil {
		return false, nil
	}
	if d.isYAML {
		n, ok := d.yaml[key]
		if !ok {
			return false, nil
		}
		return true, n.Decode(v)
	}
	raw, ok := d.json[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

// sub splits a map-valued group into a document of its own. It returns nil
// when the group is absent or is not a map.
func (d *document) sub(key string) *document {
	if d == nil {
		return nil
	}
	s := &document{name: d.name, prefix: d.prefix + key + ".", isYAML: d.isYAML, problems: d.problems}
	var (
		ok  bool
		err error
	)
	if d.isYAML {
		ok, err = d.decode(key, &s.yaml)
	} else {
		ok, err = d.decode(key, &s.json)
	}
	if err != nil {
		d.drop(key, err)
		return nil
	}
	if !ok {
		return nil
	}
	return s
}

func (d *document) keys() []string {
	if d.isYAML {
		return slices.Sorted(maps.Keys(d.yaml))
	}
	return slices.Sorted(maps.Keys(d.json))
}

func (d *document) drop(key string, err error) {
	*d.problems = append(*d.problems, fmt.Errorf("%s: %s%s ignored: %w", d.name, d.prefix, key, err))
}

func (d *document) dropped() []error {
	if d == nil {
		return nil
	}
	return *d.problems
}

// group decodes one key into dst. A group that fails to decode leaves dst
// untouched and is recorded as a problem.
func group[T any](d *document, key string, dst *T) bool {
	var v T
	ok, err := d.decode(key, &v)
	if err != nil {
		d.drop(key, err)
		return false
	}
	if ok {
		*dst = v
	}
	return ok
}
