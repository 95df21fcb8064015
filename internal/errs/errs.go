// Package errs defines the error shapes returned to API clients.
//
//   - Consistent JSON error bodies with machine-readable codes.
//   - Field-level validation errors for request payloads.
//   - Optional "action hints" that clients can interpret.
package errs
