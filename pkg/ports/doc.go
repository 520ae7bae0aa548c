/*
Package ports defines the driven ports (interfaces) of the presenter.

These interfaces decouple sessions and surfaces from external implementations, so the
same deck can be presented from memory, from disk or across replicas sharing Redis.

# Key Interfaces

  - SnapshotStore: persists and loads presenter session snapshots.
  - DistributedLocker: serializes commands on a session across replicas.
  - NoteSource: provides speaker notes (e.g. from a Loam notes directory or memory).
*/
package ports
