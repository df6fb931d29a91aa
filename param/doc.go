// Package param implements parameter and protection registries for
// families of related type nodes.
//
// A type node declares named, defaulted fields ("parameters"), whose set
// is fixed at declaration, and may mark any member protected: unwritable and
// undeletable on the type itself, on every subtype, and on every instance.
// Registries are built exactly once per type definition by NewType, which
// merges inherited state, validates the new declaration, and detects
// ownership conflicts across arbitrarily deep, possibly diamond-shaped
// inheritance. Every subsequent Get/Set/Delete on a type or instance
// consults those registries before falling back to ordinary member
// resolution: parameter reads bypass custom accessors, and writes to
// protected members are rejected with the owning type named.
//
// Two family roots are provided: RawRoot (construction and access routing
// only) and Root, which adds the protected set_params, params and
// missing_params operations.
//
// Type construction is expected to happen during program initialization
// and is not safe under concurrent definitions sharing a base. Once built,
// a type's registries are read-only and may be consulted from multiple
// goroutines. Instance storage assumes a single writer per instance.
package param
