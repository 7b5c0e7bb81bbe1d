package resource

// Tuple is an ordered aggregate of handles. A live tuple holds one
// reference to each member; destroying the tuple releases them.
type Tuple []Handle

// Members implements Aggregate.
func (tp Tuple) Members() []Handle { return tp }

// Elem returns a borrowed reference to member i.
func (tp Tuple) Elem(t *Table, i int) Ref {
	return Ref{table: t, handle: tp[i]}
}

// NewTuple retains each member and acquires a tuple owning those
// references. If any member is no longer live, the references retained so
// far are released and the zero Owned is returned.
func NewTuple(t *Table, members ...Ref) Owned {
	handles := make(Tuple, 0, len(members))
	for _, m := range members {
		if _, ok := m.Retain(); !ok {
			for _, h := range handles {
				t.release(h)
			}
			return Owned{}
		}
		handles = append(handles, m.Handle())
	}
	return t.Acquire(handles)
}

// Forbidden is the sentinel value that MappingFromPairs refuses to store.
// It exists purely to trigger the failure path.
var Forbidden = &forbiddenValue{}

type forbiddenValue struct{}

func (*forbiddenValue) String() string { return "Forbidden" }
