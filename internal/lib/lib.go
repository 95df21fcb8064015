// Package lib groups helpers that do not fit strictly into other layers:
// background job processing (Asynq), the Resend e-mail client and small
// utilities.
package lib
