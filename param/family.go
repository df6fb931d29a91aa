package param

import (
	"fmt"
	"reflect"
	"strings"
)

// Overridable hook member names. A subtype overrides a hook by declaring
// a namespace member under the hook's name with the matching func type;
// mismatched types are ignored.
const (
	// HookBeforeSet is called with (instance, name, value) before a
	// parameter value is stored.
	HookBeforeSet = "before_set"
	// HookPostInit is called after all keyword parameters are assigned
	// during construction, with the leftover args and kwargs.
	HookPostInit = "post_init"
	// HookRepr builds the instance's string representation.
	HookRepr = "repr"
)

// Hook member types.
type (
	BeforeSetFunc func(inst *Instance, name string, value any) error
	PostInitFunc  func(inst *Instance, args []any, kwargs map[string]any) error
	ReprFunc      func(inst *Instance) string
)

// Family roots. RawRoot carries construction and access routing plus the
// overridable hooks; Root adds the protected set_params, params and
// missing_params operations. Define family types by listing one of them
// (or a descendant) among the bases.
var (
	RawRoot *Type
	Root    *Type
)

func init() {
	RawRoot = MustType(TypeSpec{
		Name: "RawParamType",
		Namespace: []Member{
			{Name: HookBeforeSet, Value: BeforeSetFunc(func(*Instance, string, any) error { return nil })},
			{Name: HookPostInit, Value: PostInitFunc(func(*Instance, []any, map[string]any) error { return nil })},
			{Name: HookRepr, Value: ReprFunc(defaultRepr)},
		},
	})

	Root = MustType(TypeSpec{
		Name:  "ParamType",
		Bases: []*Type{RawRoot},
		Namespace: []Member{
			{Name: "set_params", Value: Protect((*Instance).SetParams)},
			{Name: "params", Value: Protect(Property(paramsProperty))},
			{Name: "missing_params", Value: Protect(Property(missingParamsProperty))},
		},
	})
}

// IsParamType reports whether t is a member of the family: built by the
// registry builder and descending from Root, or from RawRoot when raw is
// true.
func IsParamType(t *Type, raw bool) bool {
	if t == nil {
		return false
	}
	root := Root
	if raw {
		root = RawRoot
	}
	return t.DescendsFrom(root)
}

// SetParams applies several parameter assignments. Every given name must
// be a known parameter; unknown names fail before any assignment is
// applied. Only available on descendants of Root.
func (inst *Instance) SetParams(values map[string]any) error {
	if !IsParamType(inst.typ, false) {
		return newNotFoundInstance(inst.typ, "set_params")
	}
	return inst.applyParams(values)
}

// Params returns a snapshot of every parameter's current value, with the
// Missing sentinel substituted where a parameter has no value. Only
// available on descendants of Root.
func (inst *Instance) Params() (map[string]any, error) {
	if !IsParamType(inst.typ, false) {
		return nil, newNotFoundInstance(inst.typ, "params")
	}
	snapshot := make(map[string]any, len(inst.typ.paramOrder))
	for _, name := range inst.typ.paramOrder {
		v, err := inst.Get(name)
		if err != nil {
			v = Missing
		}
		snapshot[name] = v
	}
	return snapshot, nil
}

// MissingParams returns the names of parameters currently unset or
// explicitly holding the Missing sentinel, in parameter order. Only
// available on descendants of Root.
func (inst *Instance) MissingParams() ([]string, error) {
	if !IsParamType(inst.typ, false) {
		return nil, newNotFoundInstance(inst.typ, "missing_params")
	}
	var missing []string
	for _, name := range inst.typ.paramOrder {
		v, err := inst.Get(name)
		if err != nil || isMissing(v) {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func paramsProperty(inst *Instance) (any, error) {
	return inst.Params()
}

func missingParamsProperty(inst *Instance) (any, error) {
	params, err := inst.MissingParams()
	if err != nil {
		return nil, err
	}
	return params, nil
}

// defaultRepr lists every parameter whose current value differs from its
// default or is missing, e.g. "A(x=1, z=?)".
func defaultRepr(inst *Instance) string {
	t := inst.typ
	var parts []string
	for _, name := range t.paramOrder {
		def := t.defaults[name]
		cur, err := inst.Get(name)
		if err != nil {
			cur = Missing
		}
		if isMissing(def) || !reflect.DeepEqual(cur, def) {
			parts = append(parts, fmt.Sprintf("%s=%v", name, cur))
		}
	}
	return fmt.Sprintf("%s(%s)", t.name, strings.Join(parts, ", "))
}
