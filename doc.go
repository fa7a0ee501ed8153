// Package realworld implements a small people-directory API: people and
// user records persisted via Bun, password-credential login that issues
// signed JWT bearer tokens, and HTTP controllers mounted on go-router.
//
// Layout:
//   - Repositories (People, Users) wrap Bun queries and report typed
//     errors from github.com/goliatone/go-errors.
//   - Services (PeopleService, UsersService) hold the business rules:
//     user+person creation in a single transaction, password rotation,
//     and the empty-collection sentinel the HTTP layer renders as 204.
//   - Auther verifies credentials through an IdentityProvider and mints
//     tokens via TokenService; ProtectedRoute decodes the bearer token
//     and re-resolves the user on every request, so deactivated accounts
//     lose access even while their tokens are still unexpired.
//
// Responses use a {"data": ...} envelope on success and
// {"errors": [{"message": ...}]} on failure.
package realworld
