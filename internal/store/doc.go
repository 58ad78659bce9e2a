// Package store provides SQLite-backed storage for the translation journal
// and the EPSG code registry.
//
// Tables:
//   - calls: one row per conversion call, written when the call finishes
//   - translations: one row per boundary crossing inside a call
//   - epsg_codes: imported EPSG codes and their attributes
//
// # Ordering
//
// Translations are ordered by seq, the logical clock value the engine
// stamped them with, never by wall time. Calls are ordered by ID; call IDs
// are UUIDv7 and sort by creation time.
//
// # Idempotency
//
// Translation IDs are content addressed (ccs.TranslationID over call ID,
// seq and operation). Writes use ON CONFLICT DO NOTHING, so re-journaling
// the same crossing is a no-op.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
