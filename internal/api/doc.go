// Package api implements the request gateway and the remote data client for
// the myFlix backend.
//
// # Gateway
//
// [Gateway] owns URL resolution, bearer-token attachment, and error
// normalization. Every failure, transport or HTTP, comes back as [*Error]
// wrapping a shared sentinel, so callers branch with errors.Is instead of
// inspecting status codes at every call site.
//
// Registration and login never carry an Authorization header; everything
// else does, when a session is stored. An empty session sends no header at
// all; the server's authentication rejection is the authoritative outcome,
// not a client-side guess.
//
// A 401/403 on an authenticated call clears the session store inside the
// gateway. That keeps the "please log in again" recovery in exactly one
// place rather than duplicated per view.
//
// # Client
//
// [Client] maps one method to each backend operation:
//
//	Register        POST   /users
//	Login           POST   /login
//	Movies          GET    /movies
//	Movie           GET    /movies/{title}
//	Genre           GET    /movies/genre/{name}
//	Director        GET    /movies/director/{name}
//	User            GET    /users/{username}
//	UpdateUser      PUT    /users/{username}
//	DeleteUser      DELETE /users/{username}
//	AddFavorite     POST   /users/{username}/movies/{movieID}
//	RemoveFavorite  DELETE /users/{username}/movies/{movieID}
//
// The genre and director lookups use the /movies/... prefix form; the flat
// /genres/{name} variant seen in some backend revisions is not supported.
//
// Failed registrations are surfaced as-is. Earlier client generations
// retried a 500 with alternate field casing; that masks real backend errors
// and is intentionally absent here.
package api
