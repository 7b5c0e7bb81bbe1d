package mapping

import (
	"reflect"

	"github.com/wippyai/discipline/errors"
	"github.com/wippyai/discipline/resource"
)

// Dict is a key/value mapping composite. It owns one reference to every
// stored key and value; destroying the dict releases them all as a unit.
//
// Keys are compared by stored value, so two distinct handles whose values
// are equal address the same slot.
type Dict struct {
	table   *resource.Table
	entries map[any]dictEntry
}

type dictEntry struct {
	key   resource.Owned
	value resource.Owned
}

// NewDict creates an empty dict bound to a table.
func NewDict(tbl *resource.Table) *Dict {
	return &Dict{
		table:   tbl,
		entries: make(map[any]dictEntry),
	}
}

// Members implements resource.Aggregate.
func (d *Dict) Members() []resource.Handle {
	members := make([]resource.Handle, 0, 2*len(d.entries))
	for _, e := range d.entries {
		members = append(members, e.key.Handle(), e.value.Handle())
	}
	return members
}

// Set stores key -> value, retaining a reference to each. Writing to an
// occupied key releases the displaced pair exactly once (last-write-wins).
func (d *Dict) Set(key, value resource.Ref) error {
	kv, ok := key.Value()
	if !ok {
		return resource.ErrReleased
	}
	if kv == nil || !reflect.TypeOf(kv).Comparable() {
		return errors.New(errors.OpMakeDict, errors.KindShape).
			Detail("unhashable key").
			Value(kv).
			Build()
	}

	ko, ok := key.Retain()
	if !ok {
		return resource.ErrReleased
	}
	vo, ok := value.Retain()
	if !ok {
		ko.Release()
		return resource.ErrReleased
	}

	if old, exists := d.entries[kv]; exists {
		old.key.Release()
		old.value.Release()
	}
	d.entries[kv] = dictEntry{key: ko, value: vo}
	return nil
}

// Get returns a borrowed reference to the value stored under key.
func (d *Dict) Get(key any) (resource.Ref, bool) {
	e, ok := d.entries[key]
	if !ok {
		return resource.Ref{}, false
	}
	return e.value.Borrow(), true
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Keys returns the stored key values in unspecified order.
func (d *Dict) Keys() []any {
	keys := make([]any, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	return keys
}
