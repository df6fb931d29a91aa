package param

import (
	"maps"

	"github.com/teranos/paramspace/logger"
)

// Get resolves an attribute on the type object itself.
//
// The reserved names route to engine views: StorageAttr to a snapshot of
// the type's own namespace, ImplAttr to the registry snapshot. Every
// other name walks the precedence order and returns the first namespace
// value found, raw. Parameter and non-parameter reads coincide at type
// level because namespace values are never invoked here; accessor logic
// only ever runs against instances.
func (t *Type) Get(name string) (any, error) {
	switch name {
	case StorageAttr:
		return maps.Clone(t.ns), nil
	case ImplAttr:
		return t.Impl(), nil
	}

	for _, node := range t.mro {
		if v, ok := node.ns[name]; ok {
			return v, nil
		}
	}
	return nil, newNotFoundType(t, name)
}

// Set assigns a member on the type's own namespace. Writes to protected
// names are rejected with the owner named. A Protect wrapper applied here
// does not establish protection (that is construction-time only): the
// value is unwrapped, a warning is emitted, and the assignment proceeds.
func (t *Type) Set(name string, value any) error {
	if owner, ok := t.protected[name]; ok {
		return newProtectedErr(name, owner)
	}
	val, wasProtected := unwrapProtect(value)
	if isMissing(val) {
		return newMissingAssignErr(name)
	}
	if wasProtected {
		logger.Warnw("cannot protect attribute after type construction; ignored",
			logger.FieldAttr, name,
			logger.FieldType, t.name)
	}

	if _, ok := t.ns[name]; !ok {
		t.nsOrder = append(t.nsOrder, name)
	}
	t.ns[name] = val
	return nil
}

// Delete removes a member from the type's own namespace. Protected names
// are rejected; absent names report not-found.
func (t *Type) Delete(name string) error {
	if owner, ok := t.protected[name]; ok {
		return newProtectedErr(name, owner)
	}
	if _, ok := t.ns[name]; !ok {
		return newNotFoundType(t, name)
	}
	delete(t.ns, name)
	for i, n := range t.nsOrder {
		if n == name {
			t.nsOrder = append(t.nsOrder[:i], t.nsOrder[i+1:]...)
			break
		}
	}
	return nil
}
