// Package list implements a doubly linked list used as a FIFO queue
// with optional pooling of its elements.
package list

import (
	"errors"
	"sync"
)

var (
	ErrorListElementIsNil          = errors.New("list element is nil")
	ErrorListElementIsNotInTheList = errors.New("list element is not in the list")
)

// List represents a doubly linked list.
// Values are pushed to the back and taken from the front, any element
// may be removed in O(1).
// NOTE: Not thread-safe.
type List[T any] struct {
	pool *sync.Pool // optional pool of *Element[T]
	root Element[T] // sentinel element, the list is a ring through it
	len  int        // amount of elements excluding the sentinel
}

// NewList creates new List instance.
func NewList[T any]() *List[T] {
	return NewListPooled[T](nil)
}

// NewListPooled creates new List instance taking elements from the pool
// and returning removed elements back to it.
func NewListPooled[T any](pool *sync.Pool) *List[T] {
	l := &List[T]{pool: pool}
	l.lazyInit()
	return l
}

// Len returns the number of elements of list l.
func (l *List[T]) Len() int {
	return l.len
}

// Front returns the first element of list l or nil if the list is empty.
func (l *List[T]) Front() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.next
}

// Back returns the last element of list l or nil if the list is empty.
func (l *List[T]) Back() *Element[T] {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// PushBack appends value v to the back of list l and returns its element.
func (l *List[T]) PushBack(v T) *Element[T] {
	l.lazyInit()
	e := l.newElement(v)
	e.prev, e.next = l.root.prev, &l.root
	e.prev.next, e.next.prev = e, e
	e.list = l
	l.len++
	return e
}

// PopFront removes the first element of list l and returns its value.
func (l *List[T]) PopFront() (v T, ok bool) {
	e := l.Front()
	if e == nil {
		return
	}
	v = e.Value
	l.unlink(e)
	return v, true
}

// Remove removes e from l and returns its value.
// The element must not be used after removal.
func (l *List[T]) Remove(e *Element[T]) (v T, err error) {
	if e == nil {
		err = ErrorListElementIsNil
		return
	}
	if e.list != l {
		err = ErrorListElementIsNotInTheList
		return
	}
	v = e.Value
	l.unlink(e)
	return
}

// RemoveIf removes all elements whose values satisfy the predicate keeping
// the order of the rest and returns amount of removed elements.
func (l *List[T]) RemoveIf(predicate func(v T) bool) int {
	removed := 0
	for it := l.Iterator(); it.Next(); {
		if predicate(it.Current().Value) {
			l.unlink(it.Current())
			removed++
		}
	}
	return removed
}

// Iterator returns an iterator positioned before the first element of list l.
func (l *List[T]) Iterator() Iterator[T] {
	l.lazyInit()
	return NewIterator(l)
}

// Clean removes all elements from list l.
func (l *List[T]) Clean() {
	for e := l.Front(); e != nil; {
		next := e.Next()
		l.release(e)
		e = next
	}
	l.root.next, l.root.prev = &l.root, &l.root
	l.len = 0
}

// lazyInit lazily initializes a zero List value.
func (l *List[T]) lazyInit() {
	if l.root.next == nil {
		l.root.next, l.root.prev = &l.root, &l.root
	}
}

func (l *List[T]) newElement(v T) *Element[T] {
	if l.pool != nil {
		e := l.pool.Get().(*Element[T])
		e.Value = v
		return e
	}
	return &Element[T]{Value: v}
}

// unlink removes e from the ring and releases it.
func (l *List[T]) unlink(e *Element[T]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	l.len--
	l.release(e)
}

// release detaches e so stale pointers to it never reach the list again.
// Value is not cleared, it is always overwritten when the element is reused.
func (l *List[T]) release(e *Element[T]) {
	e.next, e.prev, e.list = nil, nil, nil
	if l.pool != nil {
		l.pool.Put(e)
	}
}
