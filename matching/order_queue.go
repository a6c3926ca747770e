package matching

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/tidwall/hashmap"

	"github.com/cryptonstudio/crypton-order-book/types/list"
)

// OrderQueue stores orders resting at one exact price.
// The id map is authoritative, the FIFO hint keeps arrival order and may
// contain ids of already removed orders which are skipped on read.
// Total quantity is maintained on every change and never recomputed by summation.
// NOTE: Thread-safe.
type OrderQueue struct {
	mu     sync.Mutex
	orders *hashmap.Map[uint64, Order]
	hint   *list.List[uint64]
	total  atomic.Uint64 // math.Float64bits of the total quantity
}

// NewOrderQueue creates and returns new empty OrderQueue instance.
func NewOrderQueue() *OrderQueue {
	return newOrderQueue(nil)
}

func newOrderQueue(allocator *Allocator) *OrderQueue {
	q := &OrderQueue{
		orders: hashmap.New[uint64, Order](defaultReservedOrderSlots),
	}
	if allocator != nil {
		q.hint = list.NewListPooled[uint64](&allocator.hintElements)
	} else {
		q.hint = list.NewList[uint64]()
	}
	return q
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// TotalQuantity returns total quantity of all live orders in the queue.
func (q *OrderQueue) TotalQuantity() float64 {
	return math.Float64frombits(q.total.Load())
}

// Len returns amount of live orders in the queue.
func (q *OrderQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.orders.Len()
}

// IsEmpty returns true if the queue has no live orders.
func (q *OrderQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Get returns the order with given id.
func (q *OrderQueue) Get(id uint64) (Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.orders.Get(id)
}

// Orders returns live orders in arrival order.
func (q *OrderQueue) Orders() []Order {
	q.mu.Lock()
	defer q.mu.Unlock()
	orders := make([]Order, 0, q.orders.Len())
	for e := q.hint.Front(); e != nil; e = e.Next() {
		if order, ok := q.orders.Get(e.Value); ok {
			orders = append(orders, order)
		}
	}
	return orders
}

////////////////////////////////////////////////////////////////
// Mutations
////////////////////////////////////////////////////////////////

// Add inserts the order at the back of the queue.
// Adding an id which is already queued replaces the order keeping its position.
func (q *OrderQueue) Add(order Order) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if prev, replaced := q.orders.Set(order.id, order); replaced {
		q.addTotal(order.quantity - prev.quantity)
		return
	}
	q.hint.PushBack(order.id)
	q.addTotal(order.quantity)
}

// Remove removes the order with given id and returns it.
// Removing an absent order returns false.
func (q *OrderQueue) Remove(id uint64) (Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	order, ok := q.orders.Delete(id)
	if !ok {
		return Order{}, false
	}
	q.addTotal(-order.quantity)
	q.compact()
	return order, true
}

// Update replaces quantity of the order with given id.
// Returns false if the order does not exist.
func (q *OrderQueue) Update(id uint64, quantity float64) bool {
	_, ok := q.update(id, quantity)
	return ok
}

func (q *OrderQueue) update(id uint64, quantity float64) (Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	order, ok := q.orders.Get(id)
	if !ok {
		return Order{}, false
	}
	delta := quantity - order.quantity
	order.quantity = quantity
	q.orders.Set(id, order)
	q.addTotal(delta)
	return order, true
}

// PeekFirst returns the earliest live order without removing it.
func (q *OrderQueue) PeekFirst() (Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.first(false)
}

// TakeFirst removes and returns the earliest live order.
func (q *OrderQueue) TakeFirst() (Order, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.first(true)
}

// first drains stale ids from the front of the hint until a live order is found.
// Arrival order of the remaining ids is kept.
func (q *OrderQueue) first(take bool) (Order, bool) {
	for e := q.hint.Front(); e != nil; e = q.hint.Front() {
		order, ok := q.orders.Get(e.Value)
		if !ok {
			q.hint.PopFront()
			continue
		}
		if take {
			q.hint.PopFront()
			q.orders.Delete(order.id)
			q.addTotal(-order.quantity)
		}
		return order, true
	}
	return Order{}, false
}

// Clean removes all orders and stale ids from the queue.
func (q *OrderQueue) Clean() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.orders.Len() > 0 {
		q.orders = hashmap.New[uint64, Order](defaultReservedOrderSlots)
	}
	q.hint.Clean()
	q.total.Store(0)
}

////////////////////////////////////////////////////////////////
// Internals, caller must hold q.mu
////////////////////////////////////////////////////////////////

func (q *OrderQueue) addTotal(delta float64) {
	if q.orders.Len() == 0 {
		// Drop accumulated rounding error once the queue is empty
		q.total.Store(0)
		return
	}
	q.total.Store(math.Float64bits(math.Float64frombits(q.total.Load()) + delta))
}

// compact drops stale ids from the hint once they clearly outnumber live orders.
func (q *OrderQueue) compact() {
	live := q.orders.Len()
	stale := q.hint.Len() - live
	if stale <= hintCompactionSlack || stale <= live {
		return
	}
	q.hint.RemoveIf(func(id uint64) bool {
		_, ok := q.orders.Get(id)
		return !ok
	})
}
