/*
Package observe registers change watches with the health platform and
serializes the resulting callbacks through a single dispatcher.

Platform change callbacks arrive on arbitrary goroutines with no ordering
guarantee. Rather than letting each callback fetch and publish on its own,
the hub funnels every trigger through one queue consumed by one
dispatcher goroutine:

	platform callback ──┐
	platform callback ──┼──> notifyCh ──> dispatcher ──> OnChange(trigger)
	Foreground()      ──┘     (16)         (1 goroutine)

OnChange therefore never runs concurrently with itself, and all
published-state mutation downstream of it is single-writer. A full queue
drops the trigger: a refresh is already pending and will observe the same
platform state, so nothing is lost.

# Lifecycle

Start registers one watch per category, cancelling any prior set first so
repeated starts replace rather than stack registrations. A category whose
registration fails is skipped and logged; the others proceed. Stop cancels
every watch, lets an in-flight refresh finish, and is safe to call twice.

Watches tell the engine that something changed for a category, never what
changed; the refresh always re-queries the platform for current state.
*/
package observe
