package activity

import (
	"time"

	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in profile_activity.
type LogEntry struct {
	bun.BaseModel `bun:"table:profile_activity"`

	ID         uuid.UUID      `bun:",pk,type:uuid"`
	UserID     uuid.UUID      `bun:"user_id,type:uuid"`
	ActorID    uuid.UUID      `bun:"actor_id,type:uuid"`
	TenantID   uuid.UUID      `bun:"tenant_id,type:uuid"`
	OrgID      uuid.UUID      `bun:"org_id,type:uuid"`
	Verb       string         `bun:"verb"`
	ObjectType string         `bun:"object_type"`
	ObjectID   string         `bun:"object_id"`
	Channel    string         `bun:"channel"`
	Data       map[string]any `bun:"data,type:jsonb"`
	CreatedAt  time.Time      `bun:"created_at"`
}

// entryFromRecord builds a row for record. Entries without an object refer
// to the profile of the member they are about.
func entryFromRecord(record types.ActivityRecord) *LogEntry {
	entry := &LogEntry{
		ID:         record.ID,
		UserID:     record.UserID,
		ActorID:    record.ActorID,
		TenantID:   record.TenantID,
		OrgID:      record.OrgID,
		Verb:       record.Verb,
		ObjectType: record.ObjectType,
		ObjectID:   record.ObjectID,
		Channel:    record.Channel,
		Data:       cloneMap(record.Data),
		CreatedAt:  record.OccurredAt,
	}
	if entry.Channel == "" {
		entry.Channel = ChannelProfile
	}
	if entry.ObjectType == "" && entry.UserID != uuid.Nil {
		entry.ObjectType = ObjectProfile
		entry.ObjectID = entry.UserID.String()
	}
	return entry
}

func (e *LogEntry) record() types.ActivityRecord {
	if e == nil {
		return types.ActivityRecord{}
	}
	return types.ActivityRecord{
		ID:         e.ID,
		UserID:     e.UserID,
		ActorID:    e.ActorID,
		TenantID:   e.TenantID,
		OrgID:      e.OrgID,
		Verb:       e.Verb,
		ObjectType: e.ObjectType,
		ObjectID:   e.ObjectID,
		Channel:    e.Channel,
		Data:       cloneMap(e.Data),
		OccurredAt: e.CreatedAt,
	}
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
