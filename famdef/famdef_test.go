package famdef

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/paramspace/param"
)

const sampleDefs = `
types:
  - name: Base
    params:
      - name: x
      - name: y
        default: 5
    members:
      - name: f
        value: 6
        protected: true

  - name: Child
    bases: [Base]
    params:
      - name: y
        default: 10
      - name: z
        default: true
`

func buildSample(t *testing.T) *Set {
	t.Helper()
	file, err := Parse([]byte(sampleDefs))
	require.NoError(t, err)
	set, err := Build(file)
	require.NoError(t, err)
	return set
}

func TestBuildSample(t *testing.T) {
	set := buildSample(t)
	require.Equal(t, 2, set.Len())

	base, ok := set.Type("Base")
	require.True(t, ok)
	child, ok := set.Type("Child")
	require.True(t, ok)

	assert.Equal(t, []*param.Type{base, child}, set.Types())

	// Omitted bases default to the family root.
	assert.True(t, param.IsParamType(base, false))
	assert.True(t, child.DescendsFrom(base))

	def, isParam := base.Default("x")
	require.True(t, isParam)
	assert.Same(t, param.Missing, def)

	def, _ = child.Default("y")
	assert.Equal(t, 10, def)
	def, _ = child.Default("z")
	assert.Equal(t, true, def)

	owner, protected := child.ProtectionOwner("f")
	require.True(t, protected)
	assert.Equal(t, "Base", owner.Name())
}

func TestBuildInstancesFromDefinitions(t *testing.T) {
	set := buildSample(t)
	child, _ := set.Type("Child")

	inst, err := child.New(map[string]any{"x": 1})
	require.NoError(t, err)

	v, err := inst.Get("y")
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	// Protected members from the file are enforced on instances.
	err = inst.Set("f", 7)
	require.Error(t, err)
	assert.True(t, param.IsProtected(err))
}

func TestBuildProtectionConflictSurfaces(t *testing.T) {
	file, err := Parse([]byte(`
types:
  - name: A
    members:
      - name: f
        value: 1
        protected: true
  - name: B
    bases: [A]
    members:
      - name: f
        value: 2
`))
	require.NoError(t, err)

	_, err = Build(file)
	require.Error(t, err)
	assert.True(t, param.IsProtected(err))
}

func TestBuildRejectsUnknownBase(t *testing.T) {
	file, err := Parse([]byte(`
types:
  - name: A
    bases: [Nowhere]
`))
	require.NoError(t, err)

	_, err = Build(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown base "Nowhere"`)
}

func TestBuildRejectsForwardReference(t *testing.T) {
	file, err := Parse([]byte(`
types:
  - name: A
    bases: [B]
  - name: B
`))
	require.NoError(t, err)

	_, err = Build(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown base "B"`)
}

func TestBuildRejectsDuplicateName(t *testing.T) {
	file, err := Parse([]byte(`
types:
  - name: A
  - name: A
`))
	require.NoError(t, err)

	_, err = Build(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate type definition "A"`)
}

func TestBuildRejectsProtectedParamWithoutDefault(t *testing.T) {
	file, err := Parse([]byte(`
types:
  - name: A
    params:
      - name: x
        protected: true
`))
	require.NoError(t, err)

	_, err = Build(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "protected but has no default")
}

func TestParseEmptyFile(t *testing.T) {
	file, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, file.Types)

	set, err := Build(file)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}

func TestRawRootBase(t *testing.T) {
	file, err := Parse([]byte(`
types:
  - name: R
    bases: [RawParamType]
    params:
      - name: x
`))
	require.NoError(t, err)

	set, err := Build(file)
	require.NoError(t, err)
	r, _ := set.Type("R")
	assert.False(t, param.IsParamType(r, false))
	assert.True(t, param.IsParamType(r, true))
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "types.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types:\n  - name: A\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Stop()

	reloaded := make(chan *Set, 1)
	w.OnReload(func(set *Set) error {
		select {
		case reloaded <- set:
		default:
		}
		return nil
	})
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("types:\n  - name: A\n  - name: B\n"), 0o644))

	select {
	case set := <-reloaded:
		assert.Equal(t, 2, set.Len())
		_, ok := set.Type("B")
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}
}
