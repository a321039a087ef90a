// Package activity records profile edits. The Repository implements both the
// ActivitySink used by commands and the ActivityRepository read side used by
// the activity feed query. Payloads are masked with go-masker before they are
// returned to callers.
package activity
