// Package models defines the wire types exchanged with the myFlix backend.
//
// The backend serializes every business field in PascalCase
// ([User.Username], [Movie.Title]) and uses "_id" for identifiers; the JSON
// tags here are the contract and must not be "fixed" to lowercase.
//
// Two categories of types:
//
// 1. Read-only projections: [Movie], [Genre], [Director], immutable from the
// client's perspective.
//
// 2. Account types: [User], [Credentials], [Registration], [UserPatch],
// inputs validated locally via their Validate methods before any request is
// issued, so malformed input never round-trips to the server.
//
// [LoginResponse] is the one envelope type: the {token, user} pair returned
// by POST /login, which seeds the persisted session.
package models
