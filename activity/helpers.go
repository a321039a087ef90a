package activity

import (
	"strings"

	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// Verbs emitted by profile commands.
const (
	VerbSkillsUpdated       = "profile.skills.updated"
	VerbContributionUpdated = "profile.contribution.updated"
	VerbLocationUpdated     = "profile.location.updated"
	VerbEmailUpdated        = "profile.email.updated"
	VerbAccountSaved        = "profile.account.saved"
	VerbAccountDeleted      = "profile.account.deleted"
)

// ChannelProfile is the channel used for every profile edit.
const ChannelProfile = "profile"

// Objects an activity entry can refer to.
const (
	ObjectProfile         = "profile"
	ObjectExternalAccount = "external_account"
)

// KnownObject reports whether objectType names a phonebook object.
func KnownObject(objectType string) bool {
	switch objectType {
	case ObjectProfile, ObjectExternalAccount:
		return true
	}
	return false
}

// RecordOption mutates the ActivityRecord produced by BuildRecord.
type RecordOption func(*types.ActivityRecord)

// WithChannel sets the channel/module field used for downstream filtering.
func WithChannel(channel string) RecordOption {
	return func(record *types.ActivityRecord) {
		record.Channel = strings.TrimSpace(channel)
	}
}

// BuildRecord constructs an ActivityRecord for an edit made by actor on the
// profile of userID. Metadata is copied.
func BuildRecord(actor types.ActorRef, userID uuid.UUID, scope types.ScopeFilter, verb, objectType, objectID string, metadata map[string]any, opts ...RecordOption) types.ActivityRecord {
	record := types.ActivityRecord{
		UserID:     userID,
		ActorID:    actor.ID,
		Verb:       strings.TrimSpace(verb),
		ObjectType: strings.TrimSpace(objectType),
		ObjectID:   strings.TrimSpace(objectID),
		Channel:    ChannelProfile,
		TenantID:   scope.TenantID,
		OrgID:      scope.OrgID,
		Data:       cloneMap(metadata),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&record)
		}
	}
	return record
}
