package param

// MissingType is the type of the Missing sentinel.
type MissingType struct {
	repr string
}

func (m *MissingType) String() string { return m.repr }

// Missing is the unique marker for "parameter declared but never
// assigned". It is compared by identity: a parameter value is missing iff
// it == Missing. User code can never assign it to an attribute; the
// router rejects such writes.
var Missing = &MissingType{repr: "?"}

func isMissing(v any) bool {
	return v == any(Missing)
}

// protectedValue is the transient wrapper produced by Protect. It only
// has meaning inside a TypeSpec namespace; the registry builder unwraps
// it and records the protection.
type protectedValue struct {
	val any
}

// Protect marks a declared member value as protected: once the type is
// built, the member can never be reassigned or deleted, on the type, on
// any subtype, or on any instance. Applying Protect to a value assigned
// after construction does not establish protection; the router unwraps
// it, emits a warning, and proceeds with the inner value.
func Protect(v any) any {
	return &protectedValue{val: v}
}

// unwrapProtect removes Protect wrappers, recursively if nested, and
// reports whether any wrapper was present.
func unwrapProtect(v any) (any, bool) {
	wrapped := false
	for {
		pv, ok := v.(*protectedValue)
		if !ok {
			return v, wrapped
		}
		v = pv.val
		wrapped = true
	}
}
