package param

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/paramspace/errors"
)

func TestIsParamType(t *testing.T) {
	a := mustType(t, TypeSpec{Name: "A", Bases: []*Type{Root}})
	rawOnly := mustType(t, TypeSpec{Name: "R", Bases: []*Type{RawRoot}})
	standalone := mustType(t, TypeSpec{Name: "S"})

	assert.True(t, IsParamType(a, false))
	assert.True(t, IsParamType(a, true))
	assert.False(t, IsParamType(rawOnly, false))
	assert.True(t, IsParamType(rawOnly, true))
	assert.False(t, IsParamType(standalone, false))
	assert.False(t, IsParamType(standalone, true))
	assert.False(t, IsParamType(nil, true))

	assert.True(t, IsParamType(Root, false))
	assert.False(t, IsParamType(RawRoot, false))
	assert.True(t, IsParamType(RawRoot, true))
}

func TestRootOperationsAreProtected(t *testing.T) {
	for _, name := range []string{"set_params", "params", "missing_params"} {
		owner, ok := Root.ProtectionOwner(name)
		require.True(t, ok, name)
		assert.Same(t, Root, owner, name)

		// Subtypes cannot shadow them.
		_, err := NewType(TypeSpec{
			Name:      "T",
			Bases:     []*Type{Root},
			Namespace: []Member{{Name: name, Value: 1}},
		})
		require.Error(t, err, name)
		assert.True(t, IsProtected(err), name)
	}
}

func TestSetParamsAllOrNothing(t *testing.T) {
	a := mustType(t, TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Namespace: []Member{{Name: "x", Value: 0}},
		Annotated: []string{"x"},
	})
	inst, err := a.New(nil)
	require.NoError(t, err)

	err = inst.SetParams(map[string]any{"x": 1, "bogus": 2})
	require.Error(t, err)
	assert.True(t, IsUnknownParams(err))

	// x was left unmodified.
	v, err := inst.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	require.NoError(t, inst.SetParams(map[string]any{"x": 1}))
	v, err = inst.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestParamsSnapshot(t *testing.T) {
	a := mustType(t, TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Namespace: []Member{{Name: "y", Value: 5}},
		Annotated: []string{"x", "y"},
	})
	inst, err := a.New(map[string]any{"x": 1})
	require.NoError(t, err)

	snapshot, err := inst.Params()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1, "y": 5}, snapshot)

	require.NoError(t, inst.Delete("x"))
	snapshot, err = inst.Params()
	require.NoError(t, err)
	assert.Same(t, Missing, snapshot["x"])
}

func TestMissingParams(t *testing.T) {
	a := mustType(t, TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Namespace: []Member{{Name: "y", Value: 5}},
		Annotated: []string{"x", "y", "z"},
	})
	inst, err := a.New(map[string]any{"z": 3})
	require.NoError(t, err)

	missing, err := inst.MissingParams()
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, missing)
}

func TestParamsPropertyThroughRouter(t *testing.T) {
	a := mustType(t, TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Annotated: []string{"x"},
	})
	inst, err := a.New(map[string]any{"x": 1})
	require.NoError(t, err)

	// "params" resolves through ordinary lookup and invokes the property.
	v, err := inst.Get("params")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1}, v)

	v, err = inst.Get("missing_params")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestRawRootHasNoConvenienceOps(t *testing.T) {
	r := mustType(t, TypeSpec{
		Name:      "R",
		Bases:     []*Type{RawRoot},
		Annotated: []string{"x"},
	})
	inst, err := r.New(nil)
	require.NoError(t, err)

	err = inst.SetParams(map[string]any{"x": 1})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	_, err = inst.Params()
	assert.True(t, IsNotFound(err))
	_, err = inst.MissingParams()
	assert.True(t, IsNotFound(err))
}

func TestDefaultRepr(t *testing.T) {
	a := mustType(t, TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Namespace: []Member{{Name: "y", Value: 5}},
		Annotated: []string{"x", "y"},
	})

	inst, err := a.New(nil)
	require.NoError(t, err)
	assert.Equal(t, "A(x=?)", inst.String())

	require.NoError(t, inst.Set("x", 1))
	assert.Equal(t, "A(x=1)", inst.String())

	require.NoError(t, inst.Set("y", 6))
	assert.Equal(t, "A(x=1, y=6)", inst.String())

	require.NoError(t, inst.Set("y", 5))
	assert.Equal(t, "A(x=1)", inst.String())
}

func TestReprOverride(t *testing.T) {
	custom := ReprFunc(func(inst *Instance) string {
		return "custom " + inst.TypeOf().Name()
	})
	a := mustType(t, TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Namespace: []Member{{Name: HookRepr, Value: custom}},
	})
	inst, err := a.New(nil)
	require.NoError(t, err)

	assert.Equal(t, "custom A", inst.String())
	assert.Equal(t, "custom A", fmt.Sprintf("%v", inst))
}

func TestReprCycleGuard(t *testing.T) {
	a := mustType(t, TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Annotated: []string{"self"},
	})
	inst, err := a.New(nil)
	require.NoError(t, err)
	require.NoError(t, inst.Set("self", inst))

	assert.Equal(t, "A(self=...)", inst.String())
}

func TestMissingSentinelDisplay(t *testing.T) {
	assert.Equal(t, "?", Missing.String())
	assert.Equal(t, "?", fmt.Sprintf("%v", Missing))
	assert.True(t, isMissing(Missing))
	assert.False(t, isMissing(&MissingType{repr: "?"}))
}

func TestConstructionErrorsWrapSentinel(t *testing.T) {
	_, err := NewType(TypeSpec{
		Name:      "A",
		Bases:     []*Type{Root},
		Annotated: []string{"__x__"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsConstructionError(err))
	assert.Contains(t, err.Error(), `defining type "A"`)
}
