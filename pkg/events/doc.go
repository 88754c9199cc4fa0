/*
Package events provides the in-memory event broker carrying engine updates
to presentation-layer subscribers.

The broker is the push channel of the engine's exposed surface: snapshot
and medication-list updates, authorization changes, and write outcomes are
published here and fanned out to every subscriber. Delivery is
non-blocking with buffered channels; a subscriber that falls behind skips
events rather than stalling the engine.

# Event Flow

 1. A publisher calls broker.Publish(event)
 2. The event lands on the main channel (buffer: 100)
 3. The broadcast loop forwards it to every subscriber channel (buffer: 50)
 4. Full subscriber buffers skip, never block

# Usage

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	defer broker.Unsubscribe(sub)

	go func() {
		for event := range sub {
			switch event.Type {
			case events.EventSnapshotUpdated:
				render(event.Payload.(*types.HealthSnapshot))
			case events.EventWriteFailed:
				showNonBlockingNotice(event.Message)
			}
		}
	}()

Update events carry the new published value in Payload; consumers must
treat it as read-only. Events are fire-and-forget: no acknowledgment, no
replay, best-effort delivery only.
*/
package events
