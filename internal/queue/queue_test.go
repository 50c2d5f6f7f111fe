package queue

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinQueueOrdersAscending(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	pq := NewMin[int](0)
	var want []float64
	for i := range 200 {
		d := r.Float64() * 1000
		pq.Push(i, d)
		want = append(want, d)
	}
	sort.Float64s(want)
	for _, w := range want {
		item, ok := pq.Pop()
		require.True(t, ok)
		assert.Equal(t, w, item.Distance)
	}
	_, ok := pq.Pop()
	assert.False(t, ok)
}

func TestMaxQueueOrdersDescending(t *testing.T) {
	pq := NewMax[string](4)
	pq.Push("b", 2)
	pq.Push("d", 4)
	pq.Push("a", 1)
	pq.Push("c", 3)
	top, ok := pq.Top()
	require.True(t, ok)
	assert.Equal(t, "d", top.Value)
	var got []string
	for pq.Len() > 0 {
		item, _ := pq.Pop()
		got = append(got, item.Value)
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, got)
}

func TestTiesKeepInsertionOrder(t *testing.T) {
	pq := NewMin[int](0)
	for i := range 10 {
		pq.Push(i, 1.0)
	}
	for i := range 10 {
		item, ok := pq.Pop()
		require.True(t, ok)
		assert.Equal(t, i, item.Value)
	}
	maxq := NewMax[int](0)
	for i := range 5 {
		maxq.Push(i, 1.0)
	}
	item, _ := maxq.Top()
	assert.Equal(t, 4, item.Value, "max heap evicts the latest of equal items first")
}

func TestReset(t *testing.T) {
	pq := NewMin[int](2)
	pq.Push(1, 1)
	pq.Push(2, 2)
	pq.Reset()
	assert.Equal(t, 0, pq.Len())
	_, ok := pq.Top()
	assert.False(t, ok)
}
