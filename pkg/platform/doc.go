/*
Package platform defines the external health platform contract and a local
BoltDB-backed implementation of it.

The engine does not control the platform; it consumes a small set of
primitives: per-(category, direction) authorization query/request, a
long-lived watch-with-callback per category plus a wake-on-change delivery
flag, point and range reads, and an atomic multi-record write.

# Architecture

	┌───────────────────── PLATFORM BOUNDARY ─────────────────────┐
	│                                                               │
	│  ┌──────────────────────────────────────────────┐           │
	│  │               Client interface                │           │
	│  │  - AuthorizationStatus / RequestAuthorization │           │
	│  │  - SaveBatch (all-or-nothing)                 │           │
	│  │  - LatestSample / SampleRange                 │           │
	│  │  - MedicationRange / Characteristics          │           │
	│  │  - Watch + EnableBackgroundDelivery           │           │
	│  └──────────────────────┬───────────────────────┘           │
	│                         │                                     │
	│  ┌──────────────────────▼───────────────────────┐           │
	│  │               BoltPlatform                    │           │
	│  │                                                │           │
	│  │  samples bucket ── one sub-bucket/category    │           │
	│  │  authorizations ── (category, direction)      │           │
	│  │  medications    ── keyed by start time        │           │
	│  │  profile        ── static characteristics     │           │
	│  │                                                │           │
	│  │  SaveBatch = one bolt Update tx               │           │
	│  │  commit ──> notify registered watchers        │           │
	│  └──────────────────────────────────────────────┘           │
	└─────────────────────────────────────────────────────────────┘

Callbacks appear only at this boundary. Engine-internal code above the
Client interface is written in direct style; the observation hub converts
NotifyFunc callbacks into a channel it drains from a single dispatcher.

# Error Taxonomy

  - ErrUnavailable: the runtime lacks the platform capability (fatal, not
    retryable)
  - NotAuthorizedError: category-specific missing permission (recoverable by
    sending the user to the platform's settings surface)
  - ErrNoData: query succeeded, nothing matched (not a failure for callers)
  - InvalidDataError: malformed record; logged and dropped, never aborts the
    surrounding batch
  - anything else: wrapped with %w and surfaced with its description

# BoltPlatform

BoltPlatform exists so the daemon and tests run against real storage with
real transactional semantics. One SaveBatch is one transaction: if any record
is unknown or unauthorized, nothing commits. Committed saves fire the
registered watch callbacks for the touched categories, which is what drives
the observation hub end to end.

SetAuthorization, AddMedication, and SetCharacteristics are simulation
hooks: they stand in for the platform settings surface and for other apps
writing to the shared store.
*/
package platform
