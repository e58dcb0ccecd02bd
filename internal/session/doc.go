// Package session implements the persisted session store: the sole owner of
// the client's {token, user} lifecycle.
//
// # Lifecycle
//
// A session is created on successful login, its cached user record is
// rewritten wholesale on profile edits and favorites changes, and it is
// destroyed on logout, on account deletion, and whenever the backend rejects
// the token (401/403).
//
// # Invariant
//
// Token and user are stored and cleared as one unit. [SQLiteStore.Save] runs
// in a transaction, and [SQLiteStore.Load] discards any row it cannot fully
// decode, so callers never observe a token without a user record.
//
// The cached user is a mirror of server state, not a source of truth.
// Writes are whole-record replacements; the only writers are login, profile
// edit, account deletion, and the favorites reconciler.
package session
