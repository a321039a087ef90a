// Package command exposes go-command compatible handlers for profile edits.
// Every handler cleans its submission through the forms package first and
// writes nothing unless the whole submission is valid. Rejected submissions
// surface as go-errors validation errors; use FieldErrors to read the
// per-field messages.
package command
