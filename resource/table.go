package resource

import (
	"errors"
	"sync"
)

var (
	ErrClosed   = errors.New("resource table closed")
	ErrReleased = errors.New("handle already released")
)

// Table is a reference-counted resource table. Every entry carries a
// reference count; the entry is destroyed when the count reaches zero.
// Destroying an aggregate entry releases one reference to each member.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	value any
	refs  uint32
	valid bool
}

type destroyedEntry struct {
	value  any
	handle Handle
}

// NewTable creates an empty resource table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Acquire stores a value with an initial reference and returns the owned
// handle. Returns the zero Owned if the table is closed.
func (t *Table) Acquire(value any) Owned {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return Owned{}
	}

	e := entry{value: value, refs: 1, valid: true}
	var h Handle
	if len(t.freeList) > 0 {
		h = t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = e
	} else {
		t.entries = append(t.entries, e)
		h = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventAcquired, Handle: h, Value: value})
	return Owned{table: t, handle: h}
}

// Borrow returns a borrowed view of a handle without touching its count.
func (t *Table) Borrow(h Handle) Ref {
	return Ref{table: t, handle: h}
}

// Live returns the number of live entries.
func (t *Table) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Refs returns the reference count for a handle.
func (t *Table) Refs(h Handle) (uint32, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.lookup(h)
	if e == nil {
		return 0, false
	}
	return e.refs, true
}

// Each iterates over all live entries.
func (t *Table) Each(fn func(Handle, any) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.entries {
		if t.entries[i].valid {
			if !fn(Handle(i+1), t.entries[i].value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close destroys all remaining entries and stops accepting operations.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true

	var dead []destroyedEntry
	for i := range t.entries {
		if t.entries[i].valid {
			dead = append(dead, destroyedEntry{value: t.entries[i].value, handle: Handle(i + 1)})
			t.entries[i].valid = false
			t.entries[i].value = nil
		}
	}
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()

	t.destroyed(dead)
	return nil
}

func (t *Table) lookup(h Handle) *entry {
	if h == 0 || int(h) > len(t.entries) {
		return nil
	}
	e := &t.entries[h-1]
	if !e.valid {
		return nil
	}
	return e
}

func (t *Table) get(h Handle) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.lookup(h)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

func (t *Table) live(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lookup(h) != nil
}

func (t *Table) retain(h Handle) bool {
	t.mu.Lock()
	e := t.lookup(h)
	if e == nil {
		t.mu.Unlock()
		return false
	}
	e.refs++
	value := e.value
	t.mu.Unlock()

	t.notify(Event{Type: EventRetained, Handle: h, Value: value})
	return true
}

// release drops one reference. Destruction cascades iteratively through
// aggregate members while the lock is held; destructors and observers run
// after it is dropped.
func (t *Table) release(h Handle) bool {
	var dead []destroyedEntry

	t.mu.Lock()
	if t.lookup(h) == nil {
		t.mu.Unlock()
		return false
	}
	work := []Handle{h}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		e := t.lookup(cur)
		if e == nil || e.refs == 0 {
			continue
		}
		e.refs--
		if e.refs > 0 {
			continue
		}
		value := e.value
		e.valid = false
		e.value = nil
		t.freeList = append(t.freeList, cur)
		dead = append(dead, destroyedEntry{value: value, handle: cur})

		if agg, ok := value.(Aggregate); ok {
			work = append(work, agg.Members()...)
		}
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventReleased, Handle: h})
	t.destroyed(dead)
	return true
}

func (t *Table) destroyed(dead []destroyedEntry) {
	for _, d := range dead {
		if dr, ok := d.value.(Dropper); ok {
			dr.Drop()
		}
		t.notify(Event{Type: EventDestroyed, Handle: d.handle, Value: d.value})
	}
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
