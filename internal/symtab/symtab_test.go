package symtab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T) *SymbolTable {
	t.Helper()
	st, err := New()
	require.NoError(t, err)
	return st
}

func TestDeclareAssignsSequentialOffsets(t *testing.T) {
	st := newTable(t)

	a := &Properties{Type: TypeInteger}
	b := &Properties{Type: TypeBoolean}
	c := &Properties{Type: TypeInteger | TypeArray}
	require.NoError(t, st.Declare("a", a))
	require.NoError(t, st.Declare("b", b))
	require.NoError(t, st.Declare("c", c))

	assert.Equal(t, 1, a.Offset)
	assert.Equal(t, 2, b.Offset)
	assert.Equal(t, 3, c.Offset)
	assert.Equal(t, 4, st.FrameWidth())
}

func TestCallablesGetNoOffset(t *testing.T) {
	st := newTable(t)

	f := &Properties{Type: TypeInteger | TypeCallable}
	require.NoError(t, st.Declare("f", f))

	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, 1, st.FrameWidth(), "callable declarations must not advance the offset counter")
}

func TestRedeclarationRejected(t *testing.T) {
	st := newTable(t)

	require.NoError(t, st.Declare("x", &Properties{Type: TypeInteger}))
	err := st.Declare("x", &Properties{Type: TypeBoolean})
	assert.ErrorIs(t, err, ErrRedeclared)

	// Offset state is untouched by the failed declaration.
	assert.Equal(t, 2, st.FrameWidth())
	p, ok := st.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, TypeInteger, p.Type)
}

func TestScopeFallbackIsCallableOnly(t *testing.T) {
	st := newTable(t)

	require.NoError(t, st.Declare("x", &Properties{Type: TypeInteger}))
	require.NoError(t, st.OpenScope("f", &Properties{Type: TypeCallable}))

	// Variables of the enclosing scope are invisible.
	_, ok := st.Lookup("x")
	assert.False(t, ok)

	// The subroutine's own name resolves, enabling recursion.
	p, ok := st.Lookup("f")
	require.True(t, ok)
	assert.True(t, p.Type.IsCallable())
}

func TestOpenScopeResetsOffsets(t *testing.T) {
	st := newTable(t)

	outer := &Properties{Type: TypeInteger}
	require.NoError(t, st.Declare("x", outer))
	require.NoError(t, st.OpenScope("f", &Properties{Type: TypeCallable}))

	inner := &Properties{Type: TypeInteger}
	require.NoError(t, st.Declare("y", inner))

	assert.Equal(t, 1, outer.Offset)
	assert.Equal(t, 1, inner.Offset, "offsets restart at 1 in a fresh scope")
}

func TestNestingCappedAtOneLevel(t *testing.T) {
	st := newTable(t)

	require.NoError(t, st.OpenScope("f", &Properties{Type: TypeCallable}))
	err := st.OpenScope("g", &Properties{Type: TypeCallable})
	assert.ErrorIs(t, err, ErrScopeOpen)
}

func TestCloseScopeAtGlobalRejected(t *testing.T) {
	st := newTable(t)
	assert.ErrorIs(t, st.CloseScope(), ErrGlobalScope)
}

func TestEndToEndScenario(t *testing.T) {
	st := newTable(t)

	x := &Properties{Type: TypeInteger}
	require.NoError(t, st.Declare("x", x))
	assert.Equal(t, 1, x.Offset)

	require.NoError(t, st.OpenScope("f", &Properties{Type: TypeInteger | TypeCallable}))

	y := &Properties{Type: TypeInteger}
	require.NoError(t, st.Declare("y", y))
	assert.Equal(t, 1, y.Offset)

	_, ok := st.Lookup("x")
	assert.False(t, ok)

	_, ok = st.Lookup("f")
	assert.True(t, ok)

	require.NoError(t, st.CloseScope())

	_, ok = st.Lookup("y")
	assert.False(t, ok, "subroutine locals must not survive the scope")

	// The enclosing scope's counter was restored: x plus the next free slot.
	assert.Equal(t, 2, st.FrameWidth())

	require.NoError(t, st.Release())
}

func TestDumpFormat(t *testing.T) {
	st := newTable(t)

	require.NoError(t, st.Declare("x", &Properties{Type: TypeInteger}))
	require.NoError(t, st.Declare("f", &Properties{Type: TypeBoolean | TypeCallable}))

	var sb strings.Builder
	st.Dump(&sb)
	out := sb.String()

	assert.Contains(t, out, "x@1[integer]")
	assert.Contains(t, out, "f@_[boolean function]")
}

func TestValTypeString(t *testing.T) {
	tests := []struct {
		typ  ValType
		want string
	}{
		{TypeInteger, "integer"},
		{TypeBoolean, "boolean"},
		{TypeInteger | TypeArray, "integer array"},
		{TypeInteger | TypeCallable, "integer function"},
		{TypeCallable, "procedure"},
		{TypeNone, "none"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestValTypeKinds(t *testing.T) {
	assert.True(t, TypeInteger.IsVariable())
	assert.True(t, (TypeBoolean | TypeArray).IsVariable())
	assert.False(t, (TypeInteger | TypeCallable).IsVariable())
	assert.False(t, TypeNone.IsVariable())

	assert.True(t, TypeCallable.IsCallable())
	assert.True(t, (TypeInteger | TypeCallable).IsCallable())
	assert.False(t, TypeInteger.IsCallable())
}
