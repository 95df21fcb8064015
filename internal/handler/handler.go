// Package handler is the HTTP layer behind the router.
//
// Handlers bind and validate requests with the validation package, call a
// repository or a service and hand errors to the global error handler.
package handler
