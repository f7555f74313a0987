// Package storage is the persistence gateway of the time-tracking core.
//
// # Layout
//
// Two JSON documents live in the kv table of a local SQLite database:
//
//	user    -> models.User
//	pontos  -> []models.Ponto (ordered, unique by Day)
//
// There is no schema version inside the documents; a format change is a
// breaking change.
//
// # Errors
//
// Every failure, whether I/O or (de)serialization, wraps common.ErrStorage.
// A failed call may have written nothing or everything; callers must not
// assume rollback across calls.
//
// # Concurrency
//
// UpsertPonto and DeletePonto read, modify and write the pontos document in
// one transaction, so concurrent callers cannot lose each other's updates.
package storage
