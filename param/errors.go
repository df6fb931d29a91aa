package param

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teranos/paramspace/errors"
)

// RootProtection is the owner display name for the always-protected
// reserved attributes (the registry slot and the instance storage name),
// which are owned by the engine rather than by any type node.
const RootProtection = "<paramspace root protection>"

// ProtectedError reports a rejected write, delete or declaration
// targeting a protected attribute. Owner is the display name of the
// owning type, or RootProtection for engine-owned names.
type ProtectedError struct {
	Attr  string
	Owner string
}

func (e *ProtectedError) Error() string {
	return fmt.Sprintf("%q is protected by %s", e.Attr, ownerRepr(e.Owner))
}

// ConflictError reports that two unrelated types both claim protection
// ownership of the same attribute, or that a base redefines an attribute
// a sibling base protects. Owners holds both display names.
type ConflictError struct {
	Attr   string
	Owners []string
}

func (e *ConflictError) Error() string {
	reprs := make([]string, len(e.Owners))
	for i, o := range e.Owners {
		reprs[i] = ownerRepr(o)
	}
	sort.Strings(reprs)
	return fmt.Sprintf("%q protection conflict: %s", e.Attr, strings.Join(reprs, ", "))
}

// SlotConflict is one offending entry of a SlotProtectedError.
type SlotConflict struct {
	Attr  string
	Owner string
}

// SlotProtectedError reports slotted names in a new declaration that are
// already protection-owned.
type SlotProtectedError struct {
	Conflicts []SlotConflict
}

func (e *SlotProtectedError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = fmt.Sprintf("%q (from %s)", c.Attr, ownerRepr(c.Owner))
	}
	return "cannot slot the following protected attributes: " + strings.Join(parts, ", ")
}

// InvalidParamNameError reports a reserved dunder-shaped name declared as
// a parameter.
type InvalidParamNameError struct {
	Attr string
}

func (e *InvalidParamNameError) Error() string {
	return fmt.Sprintf("dunder parameters (%q) are forbidden", e.Attr)
}

// MissingAssignError reports an attempt to assign the Missing sentinel.
type MissingAssignError struct {
	Attr string
}

func (e *MissingAssignError) Error() string {
	return fmt.Sprintf("assigning the missing value sentinel (attribute %q) is forbidden", e.Attr)
}

// NotFoundError reports a get or delete of an absent, non-defaulted,
// non-stored attribute.
type NotFoundError struct {
	Type       string
	Attr       string
	OnInstance bool
}

func (e *NotFoundError) Error() string {
	if e.OnInstance {
		return fmt.Sprintf("%q instance has no attribute %q", e.Type, e.Attr)
	}
	return fmt.Sprintf("type %q has no attribute %q", e.Type, e.Attr)
}

// UnknownParamsError reports keyword names, given to construction or
// set_params, that are not known parameters. It is raised before any
// assignment is applied.
type UnknownParamsError struct {
	Params []string
}

func (e *UnknownParamsError) Error() string {
	return fmt.Sprintf("invalid parameters: %v; operation cancelled", e.Params)
}

func ownerRepr(owner string) string {
	if owner == "" || owner == RootProtection {
		return RootProtection
	}
	return fmt.Sprintf("%q", owner)
}

// ownerName is the display name recorded in errors for an owning type
// node; a nil owner means root protection.
func ownerName(owner *Type) string {
	if owner == nil {
		return RootProtection
	}
	return owner.name
}

func newProtectedErr(attr string, owner *Type) error {
	return errors.Mark(errors.WithStack(&ProtectedError{Attr: attr, Owner: ownerName(owner)}), errors.ErrAttribute)
}

func newConflictErr(attr string, a, b *Type) error {
	return errors.WithStack(&ConflictError{Attr: attr, Owners: []string{ownerName(a), ownerName(b)}})
}

func newNotFoundType(t *Type, attr string) error {
	return errors.Mark(errors.WithStack(&NotFoundError{Type: t.name, Attr: attr}), errors.ErrAttribute)
}

func newNotFoundInstance(t *Type, attr string) error {
	return errors.Mark(errors.WithStack(&NotFoundError{Type: t.name, Attr: attr, OnInstance: true}), errors.ErrAttribute)
}

func newMissingAssignErr(attr string) error {
	return errors.WithStack(&MissingAssignError{Attr: attr})
}

// IsProtected reports whether err is or wraps a ProtectedError.
func IsProtected(err error) bool {
	var e *ProtectedError
	return err != nil && errors.As(err, &e)
}

// IsConflict reports whether err is or wraps a ConflictError.
func IsConflict(err error) bool {
	var e *ConflictError
	return err != nil && errors.As(err, &e)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return err != nil && errors.As(err, &e)
}

// IsSlotProtected reports whether err is or wraps a SlotProtectedError.
func IsSlotProtected(err error) bool {
	var e *SlotProtectedError
	return err != nil && errors.As(err, &e)
}

// IsInvalidParamName reports whether err is or wraps an InvalidParamNameError.
func IsInvalidParamName(err error) bool {
	var e *InvalidParamNameError
	return err != nil && errors.As(err, &e)
}

// IsMissingAssign reports whether err is or wraps a MissingAssignError.
func IsMissingAssign(err error) bool {
	var e *MissingAssignError
	return err != nil && errors.As(err, &e)
}

// IsUnknownParams reports whether err is or wraps an UnknownParamsError.
func IsUnknownParams(err error) bool {
	var e *UnknownParamsError
	return err != nil && errors.As(err, &e)
}
