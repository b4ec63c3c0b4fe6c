package algos

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, f Addressor) []int64 {
	t.Helper()
	var addrs []int64
	for {
		addr, err := f()
		if err != nil {
			var empty *EmptyPoolError
			require.ErrorAs(t, err, &empty)
			return addrs
		}
		addrs = append(addrs, addr)
	}
}

func TestSequentialAddressor(t *testing.T) {
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, drain(t, SequentialAddressor(5)))
	assert.Empty(t, drain(t, SequentialAddressor(0)))
}

func TestPatternAddressor(t *testing.T) {
	first := drain(t, PatternAddressor(42, 100))
	second := drain(t, PatternAddressor(42, 100))
	other := drain(t, PatternAddressor(43, 100))

	require.Len(t, first, 100)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)

	sorted := append([]int64(nil), first...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, addr := range sorted {
		assert.Equal(t, int64(i), addr)
	}
}

func TestAlgoAddressor(t *testing.T) {
	f, err := AlgoAddressor(AlgoSequential, 0, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, drain(t, f))

	_, err = AlgoAddressor(AlgoUnknown, 0, 3)
	var unknown *UnknownAlgoError
	assert.ErrorAs(t, err, &unknown)
}

func TestStringToAlgo(t *testing.T) {
	assert.Equal(t, AlgoSequential, StringToAlgo("Sequential"))
	assert.Equal(t, AlgoPattern, StringToAlgo("pattern"))
	assert.Equal(t, AlgoUnknown, StringToAlgo("spiral"))
	assert.False(t, AlgoUnknown.IsValid())
	assert.Equal(t, "pattern", AlgoPattern.String())
}
