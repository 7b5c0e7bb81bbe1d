// Package scoped guarantees release-on-every-exit-path for multi-step
// constructions.
//
// Building a composite result usually takes several fallible steps, each
// acquiring handles that must be released if a later step fails. The
// Builder keeps that obligation explicit: every acquisition is registered
// as it happens, and exactly one of two things occurs -
//
//   - the construction fails, and every registered cleanup runs once, in
//     reverse order, before the error propagates; or
//   - the construction commits, ownership transfers to the caller, and
//     nothing is released.
//
// The usual shape:
//
//	var result resource.Owned
//	err := scoped.Run(func(b *scoped.Builder) error {
//	    shell := table.Acquire(newComposite())
//	    b.Track(shell)
//
//	    for _, item := range inputs {
//	        if err := addTo(shell, item); err != nil {
//	            return err // shell and contents released before this returns
//	        }
//	    }
//
//	    result = shell
//	    return nil // commit: result now belongs to the caller
//	})
//
// Run also unwinds on panic, so a step that blows up mid-construction
// cannot strand half-built state in the table.
package scoped
