package param

import (
	"fmt"
	"maps"
	"slices"

	"github.com/teranos/paramspace/errors"
	"github.com/teranos/paramspace/logger"
)

// Instance is a value of a built family type. It owns a private mutable
// storage map for non-slotted attributes plus fixed cells for slotted
// names. Instances are created through Type.New and assume a single
// writer; the type's registries they consult are immutable.
type Instance struct {
	typ     *Type
	storage map[string]any
	cells   map[string]any

	inRepr bool // guards the default repr against reference cycles
}

// New constructs an instance of t, assigning the given parameter values
// and then invoking the type's post-construction hook with no arguments.
func (t *Type) New(values map[string]any) (*Instance, error) {
	return t.NewWithInit(values, nil, nil)
}

// NewWithInit constructs an instance of t. Every key of values must name
// a known parameter; unknown names fail before any assignment is applied.
// Each value is routed through Instance.Set (so protected parameters are
// rejected and the before-set hook fires), then the post-construction
// hook receives args and kwargs.
func (t *Type) NewWithInit(values map[string]any, args []any, kwargs map[string]any) (*Instance, error) {
	inst := &Instance{
		typ:     t,
		storage: make(map[string]any),
		cells:   make(map[string]any),
	}
	if err := inst.applyParams(values); err != nil {
		return nil, errors.Wrapf(err, "constructing %q", t.name)
	}

	if hook, ok := lookupHook[PostInitFunc](inst, HookPostInit); ok {
		if err := hook(inst, args, kwargs); err != nil {
			return nil, errors.Wrapf(err, "post-construction hook of %q", t.name)
		}
	}
	return inst, nil
}

// TypeOf returns the instance's type node.
func (inst *Instance) TypeOf() *Type { return inst.typ }

// Get resolves an attribute on the instance.
//
// StorageAttr returns the live storage map (any entry stored under the
// marker name itself is discarded first; that slot is root-protected and
// must never appear stored). Protected names found lingering in storage
// are removed before resolution: such entries can only result from
// writes that did not go through the router, and the registries, not the
// storage, are authoritative for protected state. Parameter reads check
// storage and then the precedence order, bypassing accessors; other
// names resolve ordinarily, which may invoke accessor logic.
func (inst *Instance) Get(name string) (any, error) {
	t := inst.typ

	if name == StorageAttr {
		delete(inst.storage, StorageAttr)
		return inst.storage, nil
	}

	if _, isProtected := t.protected[name]; isProtected {
		delete(inst.storage, name)
	}

	if name == ImplAttr {
		return t.Impl(), nil
	}

	if !t.IsParam(name) {
		return inst.ordinaryGet(name)
	}

	if v, ok := inst.storage[name]; ok {
		return v, nil
	}
	for _, node := range t.mro {
		if v, ok := node.ns[name]; ok {
			return v, nil
		}
	}
	return nil, newNotFoundInstance(t, name)
}

// Set assigns an attribute on the instance. Protected names are rejected
// with the owner named. A Protect wrapper is unwrapped with a warning and
// never establishes protection. Parameter writes invoke the before-set
// hook and then store directly, bypassing accessor logic; other names are
// assigned ordinarily, which may invoke a Setter accessor or a slot cell.
func (inst *Instance) Set(name string, value any) error {
	t := inst.typ

	if owner, ok := t.protected[name]; ok {
		return newProtectedErr(name, owner)
	}
	val, wasProtected := unwrapProtect(value)
	if isMissing(val) {
		return newMissingAssignErr(name)
	}
	if wasProtected {
		logger.Warnw("cannot protect attribute on instance assignment; ignored",
			logger.FieldAttr, name,
			logger.FieldType, t.name)
	}

	if t.IsParam(name) {
		if hook, ok := lookupHook[BeforeSetFunc](inst, HookBeforeSet); ok {
			if err := hook(inst, name, val); err != nil {
				return err
			}
		}
		inst.storage[name] = val
		return nil
	}
	return inst.ordinarySet(name, val)
}

// Delete removes an attribute from the instance. Protected names are
// rejected. Deleting a parameter requires it to be present in instance
// storage; repeating a delete reports not-found, with no partial state.
func (inst *Instance) Delete(name string) error {
	t := inst.typ

	if owner, ok := t.protected[name]; ok {
		return newProtectedErr(name, owner)
	}

	if t.IsParam(name) {
		if _, ok := inst.storage[name]; !ok {
			return newNotFoundInstance(t, name)
		}
		delete(inst.storage, name)
		return nil
	}
	return inst.ordinaryDelete(name)
}

// ordinaryGet performs normal member resolution: data accessors first,
// then slot cells, then instance storage, then getter-only accessors and
// plain class values.
func (inst *Instance) ordinaryGet(name string) (any, error) {
	t := inst.typ

	clsVal, found := t.classLookup(name)
	if found && isDataAccessor(clsVal) {
		if getter, ok := clsVal.(Getter); ok {
			return getter.GetAttr(inst)
		}
		// A set/delete-only accessor without a getter falls through; the
		// raw value is returned below if storage has no entry.
	}

	if t.IsSlotted(name) {
		if v, ok := inst.cells[name]; ok {
			return v, nil
		}
		return nil, newNotFoundInstance(t, name)
	}

	if v, ok := inst.storage[name]; ok {
		return v, nil
	}
	if found {
		if getter, ok := clsVal.(Getter); ok {
			return getter.GetAttr(inst)
		}
		return clsVal, nil
	}
	return nil, newNotFoundInstance(t, name)
}

func (inst *Instance) ordinarySet(name string, value any) error {
	t := inst.typ

	if clsVal, found := t.classLookup(name); found {
		if setter, ok := clsVal.(Setter); ok {
			return setter.SetAttr(inst, value)
		}
	}
	if t.IsSlotted(name) {
		inst.cells[name] = value
		return nil
	}
	inst.storage[name] = value
	return nil
}

func (inst *Instance) ordinaryDelete(name string) error {
	t := inst.typ

	if clsVal, found := t.classLookup(name); found {
		if deleter, ok := clsVal.(Deleter); ok {
			return deleter.DeleteAttr(inst)
		}
	}
	if t.IsSlotted(name) {
		if _, ok := inst.cells[name]; !ok {
			return newNotFoundInstance(t, name)
		}
		delete(inst.cells, name)
		return nil
	}
	if _, ok := inst.storage[name]; !ok {
		return newNotFoundInstance(t, name)
	}
	delete(inst.storage, name)
	return nil
}

// classLookup walks the precedence order for a namespace value.
func (t *Type) classLookup(name string) (any, bool) {
	for _, node := range t.mro {
		if v, ok := node.ns[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// applyParams validates that every given name is a known parameter before
// applying any of them, then assigns in sorted name order through the
// router.
func (inst *Instance) applyParams(values map[string]any) error {
	var unknown []string
	for name := range values {
		if !inst.typ.IsParam(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return errors.Mark(errors.WithStack(&UnknownParamsError{Params: unknown}), errors.ErrAttribute)
	}

	names := slices.Collect(maps.Keys(values))
	slices.Sort(names)
	for _, name := range names {
		if err := inst.Set(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

// String renders the instance through its repr hook; the default hook
// lists every parameter whose current value differs from its default or
// is missing, e.g. "A(x=1, z=?)". Cycles render as "...".
func (inst *Instance) String() string {
	if inst.inRepr {
		return "..."
	}
	inst.inRepr = true
	defer func() { inst.inRepr = false }()

	if v, err := inst.Get(HookRepr); err == nil {
		if fn, ok := v.(ReprFunc); ok {
			return fn(inst)
		}
	}
	return defaultRepr(inst)
}

// lookupHook resolves an overridable hook member through ordinary
// resolution; hooks with an unexpected type are treated as absent.
func lookupHook[F any](inst *Instance, name string) (F, bool) {
	var zero F
	v, err := inst.Get(name)
	if err != nil {
		return zero, false
	}
	fn, ok := v.(F)
	if !ok {
		return zero, false
	}
	return fn, true
}

var _ fmt.Stringer = (*Instance)(nil)
