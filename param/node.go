package param

import (
	"maps"
	"slices"

	"github.com/teranos/paramspace/errors"
)

// Reserved attribute names, protected on every family type. ImplAttr
// routes to a type's finalized registries; StorageAttr routes to a type's
// namespace view or an instance's attribute storage.
const (
	ImplAttr    = "__impl__"
	StorageAttr = "__storage__"
)

func isReservedAttr(name string) bool {
	return name == ImplAttr || name == StorageAttr
}

// Member is one named value of a declaration namespace.
type Member struct {
	Name  string
	Value any
}

// TypeSpec is the declaration of a new type node, consumed once by
// NewType. Namespace order is declaration order and is significant for
// validation and for error reporting. Annotated lists the names declared
// as parameters; a parameter's default is its Namespace value when
// present, else Missing. Slots lists storage-less field names.
type TypeSpec struct {
	Name      string
	Bases     []*Type
	Namespace []Member
	Annotated []string
	Slots     []string
}

// Type is a built member of a type family. Its registries are finalized
// by NewType and never change afterwards; attribute writes only ever
// mutate the namespace (one name at a time, through Set/Delete) or
// instance storage.
type Type struct {
	name  string
	bases []*Type
	mro   []*Type // precedence order, self first

	ns      map[string]any
	nsOrder []string
	slots   map[string]struct{}

	defaults   map[string]any   // parameter registry
	paramOrder []string         // merge-then-declaration order
	protected  map[string]*Type // protection registry; nil owner = root protection
}

// Name returns the type's display name.
func (t *Type) Name() string { return t.name }

func (t *Type) String() string { return t.name }

// Bases returns the direct base list in declaration order.
func (t *Type) Bases() []*Type { return slices.Clone(t.bases) }

// MRO returns the linearized precedence order, starting with t itself.
func (t *Type) MRO() []*Type { return slices.Clone(t.mro) }

// DescendsFrom reports whether other appears in t's precedence order
// (every type descends from itself).
func (t *Type) DescendsFrom(other *Type) bool {
	return slices.Contains(t.mro, other)
}

// Params returns the parameter names known to this type, inherited
// parameters first in merge order, then this type's own declarations.
func (t *Type) Params() []string { return slices.Clone(t.paramOrder) }

// IsParam reports whether name is a parameter of this type.
func (t *Type) IsParam(name string) bool {
	_, ok := t.defaults[name]
	return ok
}

// Default returns the registered default for a parameter name. The
// Missing sentinel is returned for parameters declared without an
// initializer.
func (t *Type) Default(name string) (any, bool) {
	v, ok := t.defaults[name]
	return v, ok
}

// ProtectionOwner returns the type node owning the protection of name.
// A nil owner with ok true means the name is root-protected.
func (t *Type) ProtectionOwner(name string) (owner *Type, ok bool) {
	owner, ok = t.protected[name]
	return owner, ok
}

// ProtectedNames returns every protected attribute name, sorted.
func (t *Type) ProtectedNames() []string {
	names := slices.Collect(maps.Keys(t.protected))
	slices.Sort(names)
	return names
}

// IsSlotted reports whether name is a storage-less field of t or any
// ancestor.
func (t *Type) IsSlotted(name string) bool {
	for _, node := range t.mro {
		if _, ok := node.slots[name]; ok {
			return true
		}
	}
	return false
}

// Slots returns the type's own storage-less field names, sorted.
func (t *Type) Slots() []string {
	names := slices.Collect(maps.Keys(t.slots))
	slices.Sort(names)
	return names
}

// Namespace returns a copy of the type's own finalized namespace in
// declaration order.
func (t *Type) Namespace() []Member {
	members := make([]Member, 0, len(t.nsOrder))
	for _, name := range t.nsOrder {
		members = append(members, Member{Name: name, Value: t.ns[name]})
	}
	return members
}

// Impl is a read-only snapshot of a type's finalized registries, shaped
// for external tooling (static analysis, inspection) that needs to know
// which names are parameters and which are protected.
type Impl struct {
	Defaults  map[string]any    // parameter name -> default value (Missing when undeclared)
	Protected map[string]string // attribute name -> owner display name
}

// Impl returns the registry snapshot for this type.
func (t *Type) Impl() Impl {
	defaults := make(map[string]any, len(t.defaults))
	maps.Copy(defaults, t.defaults)
	protected := make(map[string]string, len(t.protected))
	for name, owner := range t.protected {
		protected[name] = ownerName(owner)
	}
	return Impl{Defaults: defaults, Protected: protected}
}

// linearize computes the C3 linearization of t over its base list. The
// base list itself is appended as the final merge sequence so that direct
// base order is preserved.
func linearize(t *Type) ([]*Type, error) {
	if len(t.bases) == 0 {
		return []*Type{t}, nil
	}

	seqs := make([][]*Type, 0, len(t.bases)+1)
	for _, base := range t.bases {
		seqs = append(seqs, slices.Clone(base.mro))
	}
	seqs = append(seqs, slices.Clone(t.bases))

	out := []*Type{t}
	for {
		seqs = slices.DeleteFunc(seqs, func(s []*Type) bool { return len(s) == 0 })
		if len(seqs) == 0 {
			return out, nil
		}

		next := pickHead(seqs)
		if next == nil {
			return nil, errors.Newf("cannot create a consistent precedence order for bases of %q", t.name)
		}

		out = append(out, next)
		for i, s := range seqs {
			if len(s) > 0 && s[0] == next {
				seqs[i] = s[1:]
			}
		}
	}
}

// pickHead returns the first sequence head that appears in no other
// sequence's tail, or nil when the hierarchy is inconsistent.
func pickHead(seqs [][]*Type) *Type {
	for _, s := range seqs {
		head := s[0]
		if !inAnyTail(head, seqs) {
			return head
		}
	}
	return nil
}

func inAnyTail(candidate *Type, seqs [][]*Type) bool {
	for _, s := range seqs {
		if len(s) > 1 && slices.Contains(s[1:], candidate) {
			return true
		}
	}
	return false
}
