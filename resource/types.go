package resource

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventAcquired EventType = iota
	EventRetained
	EventReleased
	EventDestroyed
)

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Dropper is optionally implemented by resource values that need cleanup
// when their entry is destroyed.
type Dropper interface {
	Drop()
}

// Aggregate is implemented by composite values that own other handles.
// Destroying an aggregate releases one reference to every member, so a
// composite and its contents go away as a unit.
type Aggregate interface {
	Members() []Handle
}

// Owned is a handle the holder is responsible for releasing exactly once.
// The zero Owned is invalid and safe to release (a no-op error).
type Owned struct {
	table  *Table
	handle Handle
}

// Handle returns the underlying handle.
func (o Owned) Handle() Handle { return o.handle }

// Valid reports whether the handle refers to a live entry.
func (o Owned) Valid() bool {
	return o.table != nil && o.table.live(o.handle)
}

// Value retrieves the stored value.
func (o Owned) Value() (any, bool) {
	if o.table == nil {
		return nil, false
	}
	return o.table.get(o.handle)
}

// Borrow returns a borrowed view of the handle. The borrower may read the
// value but must not release it.
func (o Owned) Borrow() Ref {
	return Ref{table: o.table, handle: o.handle}
}

// Release gives up the holder's reference. Returns ErrReleased if the
// reference was already given up.
func (o Owned) Release() error {
	if o.table == nil || !o.table.release(o.handle) {
		return ErrReleased
	}
	return nil
}

// Ref is a borrowed reference: it can read the resource and mint new owned
// references, but has no release operation.
type Ref struct {
	table  *Table
	handle Handle
}

// Handle returns the underlying handle.
func (r Ref) Handle() Handle { return r.handle }

// Valid reports whether the handle refers to a live entry.
func (r Ref) Valid() bool {
	return r.table != nil && r.table.live(r.handle)
}

// Value retrieves the stored value.
func (r Ref) Value() (any, bool) {
	if r.table == nil {
		return nil, false
	}
	return r.table.get(r.handle)
}

// Retain mints a new owned reference to the same resource.
func (r Ref) Retain() (Owned, bool) {
	if r.table == nil || !r.table.retain(r.handle) {
		return Owned{}, false
	}
	return Owned{table: r.table, handle: r.handle}, true
}
