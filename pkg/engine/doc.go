/*
Package engine assembles the synchronization facade the app talks to.

The engine owns one instance of each subsystem and wires them together:

	┌─────────────────────────────────────────────────────┐
	│                       Engine                        │
	│                                                     │
	│  authz.Registry ─── writer.Coordinator              │
	│        │                   │                        │
	│  observe.Hub ───> refresh ───> fetch.Aggregator     │
	│        │             │                              │
	│        │             v                              │
	│        │      published state ───> events.Broker    │
	└────────┼────────────────────────────────────────────┘
	         │
	  platform.Client

Outbound, Write translates a saved domain entity and submits it as one
atomic batch. Inbound, the hub's dispatcher reacts to platform change
callbacks and foreground transitions by re-fetching the consolidated
snapshot and medication list, replacing the published copies whole, and
announcing the update on the broker.

The engine is a secondary sync path for the app's data. Its failures are
published as events for non-blocking UI notices and never surface into
the primary save flow.
*/
package engine
