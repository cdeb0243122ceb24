package tinyscript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaSymbolsAndArraysShareCapacity(t *testing.T) {
	a := newArena(4)

	_, err := a.reserveArray(3) // 4 cells: consumes the whole arena
	require.Equal(t, OK, err)
	require.False(t, a.fits(1), "symbol region should have no room left")

	_, err = a.addSymbol(Symbol{Name: viewOf("x"), Kind: KindINT})
	require.Equal(t, NOMEM, err)
}

func TestArenaMarkTruncate(t *testing.T) {
	a := newArena(64)
	m := a.mark()

	_, err := a.addSymbol(Symbol{Name: viewOf("x"), Kind: KindINT, Value: 1})
	require.Equal(t, OK, err)
	_, err = a.reserveArray(2)
	require.Equal(t, OK, err)
	require.Len(t, a.syms, 1)
	require.NotEqual(t, m.arrTop, a.arrTop)

	a.truncate(m)
	require.Equal(t, m, a.mark(), "truncate must restore both regions exactly")
	require.Len(t, a.syms, 0)
}

func TestArenaTruncateNeverGrows(t *testing.T) {
	a := newArena(64)
	_, err := a.addSymbol(Symbol{Name: viewOf("x"), Kind: KindINT})
	require.Equal(t, OK, err)
	grown := a.mark()

	// truncating to a mark from before x was defined must shrink, but
	// truncating to a mark "ahead" of the current one must be a no-op.
	a.truncate(arenaMark{symCount: 0, arrTop: a.capacity})
	require.Len(t, a.syms, 0)

	a.truncate(grown) // grown.symCount=1 > current 0: must not resurrect x
	require.Len(t, a.syms, 0)
}

func TestArenaCheckArray(t *testing.T) {
	a := newArena(32)
	ptr, err := a.reserveArray(3)
	require.Equal(t, OK, err)
	require.True(t, a.checkArray(ptr))

	require.False(t, a.checkArray(-1), "negative pointer")
	require.False(t, a.checkArray(a.capacity), "past the end")
	require.False(t, a.checkArray(ptr+1), "misaligned pointer lands inside the payload, not at a length cell")
}

func TestArenaReserveArrayNegativeSize(t *testing.T) {
	a := newArena(32)
	_, err := a.reserveArray(-1)
	require.Equal(t, BADARGS, err)
}
