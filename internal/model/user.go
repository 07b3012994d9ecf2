// Package model defines the records the tracker stores and returns.
package model

// User is a person whose exercises are tracked.
//
// The ID is opaque: a MongoDB ObjectID in hex for the mongo store, an xid
// for the sqlite and memory stores. Callers must never parse it.
//
// Usernames are NOT unique; two users may share "alice". Only the ID
// identifies a user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
