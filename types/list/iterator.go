package list

// Iterator walks a list from the front to the back.
// The current element may be removed from the list while iterating,
// nothing else may change the list until the iteration is over.
type Iterator[T any] struct {
	list    *List[T]
	current *Element[T]
	next    *Element[T]
	started bool
}

// NewIterator creates iterator. Iterator is not valid until Next() call.
func NewIterator[T any](list *List[T]) Iterator[T] {
	return Iterator[T]{list: list}
}

// Next moves the iterator to the next element and returns false once
// the list is over.
func (it *Iterator[T]) Next() bool {
	if !it.started {
		it.started = true
		it.next = it.list.Front()
	}
	// The next element is remembered in advance since the current one may be released
	it.current = it.next
	if it.current == nil {
		return false
	}
	it.next = it.current.Next()
	return true
}

// Current returns the element the iterator points to.
func (it *Iterator[T]) Current() *Element[T] {
	return it.current
}

// Valid returns true while the iterator points to an element.
func (it *Iterator[T]) Valid() bool {
	return it.current != nil
}
