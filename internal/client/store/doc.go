// Package store is the application state of the time-tracking client.
//
// A Store holds one State snapshot (user, all day records, today's record,
// the derived hour bank and a loading flag). State changes only through
// Dispatch of Actions, which Reduce applies synchronously.
//
// The orchestrations LoadAll, ClockIn, EditDay, DeleteDay, UpdateProfile,
// Onboard, Reset and LoadSample talk to a storage.Gateway and commit to the
// state only after the gateway call succeeded; on failure the state is left
// as it was and the error is returned to the caller.
//
// Construct one Store at startup with New and pass it to whatever renders
// it; there is no package-level instance.
package store
