package types

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ScopeFilter carries tenant/org scoping fields used by commands/queries.
type ScopeFilter struct {
	TenantID uuid.UUID
	OrgID    uuid.UUID
}

// IsZero reports whether no scope was requested.
func (s ScopeFilter) IsZero() bool {
	return s.TenantID == uuid.Nil && s.OrgID == uuid.Nil
}

// ActorRef identifies who is performing a command or query.
type ActorRef struct {
	ID   uuid.UUID
	Type string
}

// Pagination supports query pagination across directory listings.
type Pagination struct {
	Limit  int
	Offset int
}

// Normalize fills a missing limit with def and clamps negative offsets. A
// positive max caps the limit; zero leaves it unbounded.
func (p Pagination) Normalize(def, max int) Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if max > 0 && p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// ProfileEvent signals that a profile mutation occurred. Field lists the
// form group that changed (skills, contribution, location, email).
type ProfileEvent struct {
	UserID     uuid.UUID
	Scope      ScopeFilter
	ActorID    uuid.UUID
	Field      string
	OccurredAt time.Time
	Profile    Profile
}

// ExternalAccountEvent signals that an external account entry changed.
type ExternalAccountEvent struct {
	UserID     uuid.UUID
	Scope      ScopeFilter
	ActorID    uuid.UUID
	Action     string
	OccurredAt time.Time
	Account    ExternalAccount
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterProfileChange         func(context.Context, ProfileEvent)
	AfterExternalAccountChange func(context.Context, ExternalAccountEvent)
	AfterActivity              func(context.Context, ActivityRecord)
}

// ActivityRecord describes sink inputs and is shared across sink and query layers.
type ActivityRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ActorID    uuid.UUID
	Verb       string
	ObjectType string
	ObjectID   string
	Channel    string
	TenantID   uuid.UUID
	OrgID      uuid.UUID
	Data       map[string]any
	OccurredAt time.Time
}

// ActivitySink is the minimal DI contract for emitting activity.
type ActivitySink interface {
	Log(context.Context, ActivityRecord) error
}

// ActivityFilter narrows activity feed queries. ObjectType and ObjectID
// select the history of a single profile or external account.
type ActivityFilter struct {
	Actor      ActorRef
	Scope      ScopeFilter
	UserID     uuid.UUID
	ObjectType string
	ObjectID   string
	Verbs      []string
	Pagination Pagination
}

// ActivityPage represents a paginated feed response.
type ActivityPage struct {
	Records    []ActivityRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// ActivityRepository exposes read-side access to activity logs.
type ActivityRepository interface {
	ListActivity(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

var (
	// ErrActorRequired indicates an actor reference was not supplied.
	ErrActorRequired = errors.New("go-phonebook: actor reference required")
	// ErrUserIDRequired indicates a user identifier was omitted.
	ErrUserIDRequired = errors.New("go-phonebook: user id required")
	// ErrProfileNotFound indicates the profile being edited does not exist.
	ErrProfileNotFound = errors.New("go-phonebook: profile not found")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-phonebook: service not ready")
	// ErrMissingProfileRepository occurs when profile commands lack a storage backend.
	ErrMissingProfileRepository = errors.New("go-phonebook: missing profile repository")
	// ErrMissingSkillRepository occurs when skill commands lack a storage backend.
	ErrMissingSkillRepository = errors.New("go-phonebook: missing skill repository")
	// ErrMissingAccountRepository occurs when external account commands lack storage.
	ErrMissingAccountRepository = errors.New("go-phonebook: missing external account repository")
	// ErrMissingAccountRegistry occurs when no account type registry was supplied.
	ErrMissingAccountRegistry = errors.New("go-phonebook: missing account type registry")
	// ErrMissingGeocoder occurs when location edits lack a reverse geocoder.
	ErrMissingGeocoder = errors.New("go-phonebook: missing reverse geocoder")
	// ErrMissingActivitySink occurs when activity logging has no sink.
	ErrMissingActivitySink = errors.New("go-phonebook: missing activity sink")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("go-phonebook: missing activity repository")
)
