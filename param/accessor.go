package param

// Custom accessor protocol. A namespace value implementing any of these
// interfaces participates in ordinary instance-level member resolution.
// Parameter access never invokes accessors: parameters behave like plain
// stored fields regardless of what accessor logic a type defines for
// their names.
//
// A value implementing Getter together with Setter or Deleter is a data
// accessor and takes precedence over instance storage; a Getter-only
// value is consulted after instance storage, mirroring the usual
// descriptor precedence of dynamic object models.

// Getter computes an instance read for the member's name.
type Getter interface {
	GetAttr(inst *Instance) (any, error)
}

// Setter intercepts an instance write for the member's name.
type Setter interface {
	SetAttr(inst *Instance, value any) error
}

// Deleter intercepts an instance delete for the member's name.
type Deleter interface {
	DeleteAttr(inst *Instance) error
}

// Property adapts a read-only computed member to the accessor protocol.
type Property func(inst *Instance) (any, error)

// GetAttr implements Getter.
func (p Property) GetAttr(inst *Instance) (any, error) { return p(inst) }

// isDataAccessor reports whether v intercepts writes or deletes, which
// gives it precedence over instance storage on reads as well.
func isDataAccessor(v any) bool {
	if _, ok := v.(Setter); ok {
		return true
	}
	_, ok := v.(Deleter)
	return ok
}
