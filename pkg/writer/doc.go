/*
Package writer submits translated record batches to the health platform.

The coordinator translates one domain entity, drops records whose category
is not currently write-authorized (reporting them as skipped), and submits
the remainder as a single atomic batch: all records commit or none do. An
entity that yields no writable records fails fast with ErrNoWritableData
instead of issuing an empty batch.

The platform is append-only from this engine's perspective: re-submitting
an entity appends new records. Failures are returned to the caller and
never retried automatically; retry is a caller/UI decision, and a write
failure must never block or roll back the app's primary save.
*/
package writer
