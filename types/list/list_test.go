package list

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListPushRemove(t *testing.T) {
	l := NewList[string]()
	require.Nil(t, l.Front())
	require.Nil(t, l.Back())

	a := l.PushBack("a")
	b := l.PushBack("b")
	c := l.PushBack("c")
	require.Equal(t, 3, l.Len())
	require.Equal(t, a, l.Front())
	require.Equal(t, c, l.Back())
	require.Equal(t, b, a.Next())
	require.Equal(t, b, c.Prev())
	require.Nil(t, c.Next())
	require.Nil(t, a.Prev())

	v, err := l.Remove(b)
	require.NoError(t, err)
	require.Equal(t, "b", v)
	require.Equal(t, c, a.Next())

	_, err = l.Remove(b)
	require.ErrorIs(t, err, ErrorListElementIsNotInTheList)
	_, err = l.Remove(nil)
	require.ErrorIs(t, err, ErrorListElementIsNil)

	other := NewList[string]()
	foreign := other.PushBack("x")
	_, err = l.Remove(foreign)
	require.ErrorIs(t, err, ErrorListElementIsNotInTheList)
	require.Equal(t, 2, l.Len())
}

func TestListPooled(t *testing.T) {
	pool := &sync.Pool{New: func() any { return new(Element[uint64]) }}
	l := NewListPooled[uint64](pool)
	for i := uint64(1); i <= 5; i++ {
		l.PushBack(i)
	}
	_, err := l.Remove(l.Front())
	require.NoError(t, err)
	require.Equal(t, uint64(2), l.Front().Value)

	l.Clean()
	require.Equal(t, 0, l.Len())
	require.Nil(t, l.Front())

	e := l.PushBack(42)
	require.Equal(t, uint64(42), e.Value)
	require.Equal(t, e, l.Front())
	require.Equal(t, e, l.Back())
}

func TestListPopFront(t *testing.T) {
	l := NewList[int]()
	_, ok := l.PopFront()
	require.False(t, ok)

	for i := 1; i <= 3; i++ {
		l.PushBack(i)
	}
	for i := 1; i <= 3; i++ {
		v, ok := l.PopFront()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Zero(t, l.Len())
	require.Nil(t, l.Back())
}

func TestListRemoveIf(t *testing.T) {
	testCases := []struct {
		name     string
		values   []int
		expected []int
	}{
		{"empty", nil, []int{}},
		{"nothing removed", []int{1, 3, 5}, []int{1, 3, 5}},
		{"everything removed", []int{2, 4, 6}, []int{}},
		{"mixed", []int{1, 2, 3, 4, 5, 6}, []int{1, 3, 5}},
		{"adjacent", []int{2, 2, 1, 4, 4}, []int{1}},
	}
	even := func(v int) bool { return v%2 == 0 }
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pool := &sync.Pool{New: func() any { return new(Element[int]) }}
			l := NewListPooled[int](pool)
			for _, v := range tc.values {
				l.PushBack(v)
			}
			removed := l.RemoveIf(even)
			require.Equal(t, len(tc.values)-len(tc.expected), removed)
			require.Equal(t, tc.expected, values(l))
		})
	}
}

func values[T any](l *List[T]) []T {
	result := []T{}
	for e := l.Front(); e != nil; e = e.Next() {
		result = append(result, e.Value)
	}
	return result
}
