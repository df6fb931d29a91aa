// Package famdef loads family type definitions from YAML files and
// builds them into finalized types. Definition files declare types in
// order; each type may list earlier types or the family roots among its
// bases.
package famdef

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teranos/paramspace/errors"
	"github.com/teranos/paramspace/param"
)

// File is the top-level schema of a definition file.
type File struct {
	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one type.
type TypeDef struct {
	Name    string      `yaml:"name"`
	Bases   []string    `yaml:"bases,omitempty"`
	Params  []ParamDef  `yaml:"params,omitempty"`
	Members []MemberDef `yaml:"members,omitempty"`
	Slots   []string    `yaml:"slots,omitempty"`
}

// ParamDef declares a parameter. A nil Default leaves the parameter
// without a value; an explicit null default is a nil value.
type ParamDef struct {
	Name      string     `yaml:"name"`
	Default   *yaml.Node `yaml:"default,omitempty"`
	Protected bool       `yaml:"protected,omitempty"`
}

// MemberDef declares a non-parameter namespace member.
type MemberDef struct {
	Name      string     `yaml:"name"`
	Value     *yaml.Node `yaml:"value"`
	Protected bool       `yaml:"protected,omitempty"`
}

// Set holds the built types of one definition file in declaration order.
type Set struct {
	order []string
	types map[string]*param.Type
}

// Types returns the built types in declaration order.
func (s *Set) Types() []*param.Type {
	out := make([]*param.Type, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.types[name])
	}
	return out
}

// Type returns the built type with the given name.
func (s *Set) Type(name string) (*param.Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Len returns the number of built types.
func (s *Set) Len() int { return len(s.order) }

// Load reads and parses a definition file. Unknown fields are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading definition file %s", path)
	}
	return Parse(data)
}

// Parse parses definition file contents.
func Parse(data []byte) (*File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "parsing definition YAML")
	}

	var file File
	if root.Kind != 0 {
		if err := root.Decode(&file); err != nil {
			return nil, errors.Wrap(err, "decoding definition YAML")
		}
	}
	return &file, nil
}

// Build constructs every type a file declares. Base names resolve to
// the family roots ("ParamType", "RawParamType") or to types declared
// earlier in the same file.
func Build(file *File) (*Set, error) {
	set := &Set{types: make(map[string]*param.Type, len(file.Types))}

	for _, def := range file.Types {
		if def.Name == "" {
			return nil, errors.New("type definition without a name")
		}
		if _, dup := set.types[def.Name]; dup {
			return nil, errors.Newf("duplicate type definition %q", def.Name)
		}

		spec, err := toSpec(def, set)
		if err != nil {
			return nil, err
		}
		t, err := param.NewType(spec)
		if err != nil {
			return nil, err
		}
		set.order = append(set.order, def.Name)
		set.types[def.Name] = t
	}
	return set, nil
}

func toSpec(def TypeDef, set *Set) (param.TypeSpec, error) {
	spec := param.TypeSpec{Name: def.Name, Slots: def.Slots}

	if len(def.Bases) == 0 {
		spec.Bases = []*param.Type{param.Root}
	}
	for _, baseName := range def.Bases {
		base, err := resolveBase(baseName, set)
		if err != nil {
			return param.TypeSpec{}, errors.Wrapf(err, "type %q", def.Name)
		}
		spec.Bases = append(spec.Bases, base)
	}

	for _, p := range def.Params {
		if p.Name == "" {
			return param.TypeSpec{}, errors.Newf("type %q: parameter without a name", def.Name)
		}
		spec.Annotated = append(spec.Annotated, p.Name)
		if p.Default != nil {
			value, err := decodeValue(p.Default)
			if err != nil {
				return param.TypeSpec{}, errors.Wrapf(err, "type %q: parameter %q default", def.Name, p.Name)
			}
			if p.Protected {
				value = param.Protect(value)
			}
			spec.Namespace = append(spec.Namespace, param.Member{Name: p.Name, Value: value})
		} else if p.Protected {
			return param.TypeSpec{}, errors.Newf("type %q: parameter %q is protected but has no default", def.Name, p.Name)
		}
	}

	for _, m := range def.Members {
		if m.Name == "" {
			return param.TypeSpec{}, errors.Newf("type %q: member without a name", def.Name)
		}
		value, err := decodeValue(m.Value)
		if err != nil {
			return param.TypeSpec{}, errors.Wrapf(err, "type %q: member %q value", def.Name, m.Name)
		}
		if m.Protected {
			value = param.Protect(value)
		}
		spec.Namespace = append(spec.Namespace, param.Member{Name: m.Name, Value: value})
	}

	return spec, nil
}

func resolveBase(name string, set *Set) (*param.Type, error) {
	switch name {
	case param.Root.Name():
		return param.Root, nil
	case param.RawRoot.Name():
		return param.RawRoot, nil
	}
	if t, ok := set.types[name]; ok {
		return t, nil
	}
	return nil, errors.Newf("unknown base %q", name)
}

func decodeValue(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}
