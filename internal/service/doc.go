// Package service contains the application use cases: registration, login,
// bearer-token resolution and task management. It orchestrates the domain
// types, the repositories from internal/store and the background job
// submitter, and applies transaction boundaries around every write.
//
// Services depend on interfaces only (store.UserStore, store.TaskStore,
// store.Transactor, auth.PasswordHasher, auth.TokenService, job.Submitter),
// never on concrete infrastructure, so they are unit tested with the
// implementations in internal/mocks.
//
// Error handling:
//   - Expected conditions are returned as sentinel errors from this package
//     or from internal/store, each wrapping a domain category
//     (domain.ErrUnauthorized, domain.ErrNotFound, domain.ErrConflict,
//     domain.ErrValidation).
//   - Callers use errors.Is to test for them; the API layer maps the
//     categories to HTTP status codes.
package service
