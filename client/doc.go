// Package client implements the session store consumed by MedScan
// frontends: an in-memory identity state machine synchronized with the
// server over the /api/auth endpoints.
//
// The store starts in an unknown state (loading, unauthenticated) until the
// first CheckStatus settles. Construction performs no network I/O: the owner
// must call CheckStatus once at startup, or the store remains in the unknown
// state forever. All four operations carry credentials through a cookie jar,
// so whichever session mode the server runs in works unchanged.
// Concurrent operations are not de-duplicated; the last response to resolve
// wins, and callers should disable triggering controls while Loading is set.
package client
