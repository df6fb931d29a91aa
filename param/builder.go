package param

import (
	"maps"
	"slices"
	"strings"

	"github.com/teranos/paramspace/errors"
)

// NewType builds a new type node from spec and attaches its finalized
// registries. It is the only way to create a Type; the builder runs once
// per definition and every failure is reported here, never deferred.
//
// The build folds each base's registries least-specific-first (so the
// most specific base wins default ties), detects protection-ownership
// conflicts between unrelated bases, validates the new namespace in
// declaration order, and finally registers the spec's annotated names as
// parameters.
func NewType(spec TypeSpec) (*Type, error) {
	t, err := build(spec)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "defining type %q", spec.Name), errors.ErrConstruction)
	}
	return t, nil
}

// MustType is NewType panicking on error, for package-level family
// definitions that run during initialization.
func MustType(spec TypeSpec) *Type {
	t, err := NewType(spec)
	if err != nil {
		panic(err)
	}
	return t
}

func build(spec TypeSpec) (*Type, error) {
	if spec.Name == "" {
		return nil, errors.New("type name must not be empty")
	}

	defaults := make(map[string]any)
	var paramOrder []string
	protected := map[string]*Type{
		ImplAttr:    nil,
		StorageAttr: nil,
	}

	// Fold bases in reverse declaration order so the most specific base's
	// defaults land last.
	for i := len(spec.Bases) - 1; i >= 0; i-- {
		base := spec.Bases[i]
		if base == nil {
			return nil, errors.Newf("base #%d of %q is nil", i, spec.Name)
		}

		for _, name := range base.paramOrder {
			if _, seen := defaults[name]; !seen {
				paramOrder = append(paramOrder, name)
			}
			defaults[name] = base.defaults[name]
		}

		// Protection coherence with every base already folded.
		baseProtected := slices.Collect(maps.Keys(base.protected))
		slices.Sort(baseProtected)
		for _, name := range baseProtected {
			owner := base.protected[name]
			prev, seen := protected[name]
			if !seen {
				protected[name] = owner
				continue
			}
			if prev != owner {
				return nil, newConflictErr(name, owner, prev)
			}
		}

		// A base redefining a name some other type protects is a
		// conflict even if the base never marked the name itself.
		for _, name := range base.nsOrder {
			if isReservedAttr(name) {
				continue
			}
			if owner, seen := protected[name]; seen && owner != base {
				return nil, newConflictErr(name, base, owner)
			}
		}
	}

	// Protected names cannot be slotted.
	slotted := make(map[string]struct{}, len(spec.Slots))
	var slotConflicts []SlotConflict
	for _, name := range spec.Slots {
		slotted[name] = struct{}{}
		if owner, seen := protected[name]; seen {
			slotConflicts = append(slotConflicts, SlotConflict{Attr: name, Owner: ownerName(owner)})
		}
	}
	if len(slotConflicts) > 0 {
		slices.SortFunc(slotConflicts, func(a, b SlotConflict) int {
			return strings.Compare(a.Attr, b.Attr)
		})
		return nil, errors.WithStack(&SlotProtectedError{Conflicts: slotConflicts})
	}

	// Walk the namespace in declaration order: protection check, wrapper
	// unwrap, missing-sentinel check.
	ns := make(map[string]any, len(spec.Namespace))
	nsOrder := make([]string, 0, len(spec.Namespace))
	var newlyProtected []string
	for _, m := range spec.Namespace {
		if owner, seen := protected[m.Name]; seen {
			return nil, newProtectedErr(m.Name, owner)
		}
		if _, ok := slotted[m.Name]; ok {
			return nil, errors.Newf("slotted attribute %q conflicts with a declared member", m.Name)
		}
		val, wasProtected := unwrapProtect(m.Value)
		if isMissing(val) {
			return nil, newMissingAssignErr(m.Name)
		}
		if _, dup := ns[m.Name]; !dup {
			nsOrder = append(nsOrder, m.Name)
		}
		ns[m.Name] = val
		if wasProtected && !slices.Contains(newlyProtected, m.Name) {
			newlyProtected = append(newlyProtected, m.Name)
		}
	}

	// Register annotated names as parameters.
	for _, name := range spec.Annotated {
		if owner, seen := protected[name]; seen {
			return nil, newProtectedErr(name, owner)
		}
		if isDunder(name) {
			return nil, errors.WithStack(&InvalidParamNameError{Attr: name})
		}
		if _, seen := defaults[name]; !seen {
			paramOrder = append(paramOrder, name)
		}
		if v, ok := ns[name]; ok {
			defaults[name] = v
		} else {
			defaults[name] = Missing
		}
	}

	t := &Type{
		name:       spec.Name,
		bases:      slices.Clone(spec.Bases),
		ns:         ns,
		nsOrder:    nsOrder,
		slots:      slotted,
		defaults:   defaults,
		paramOrder: paramOrder,
		protected:  protected,
	}

	mro, err := linearize(t)
	if err != nil {
		return nil, err
	}
	t.mro = mro

	// Ownership of newly protected names goes to the type being built.
	for _, name := range newlyProtected {
		protected[name] = t
	}

	return t, nil
}

// isDunder reports whether name has the framework-reserved bracket form
// ("__x__"). Such names are forbidden as parameters.
func isDunder(name string) bool {
	return strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}
