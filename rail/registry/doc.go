// Package registry manages live yard sessions for Railyard.
//
// The registry package implements fleet.SessionManager: an in-memory,
// case-insensitive map from session ids to materialized yards. Sessions
// are created from validated yard fixtures, identified by short random
// ids, and carry creation and last-access timestamps for cleanup.
//
// Yards are pure in-memory structures; the registry holds no durable
// state and everything is gone when the process exits.
package registry
