package activity

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_LogAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestActivityDB(t)
	applyActivityDDL(t, db)

	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	userID := uuid.New()
	event := BuildRecord(types.ActorRef{ID: uuid.New()}, userID, types.ScopeFilter{},
		VerbSkillsUpdated, "profile", userID.String(),
		map[string]any{"skills": []any{"go", "sql"}},
	)
	require.NoError(t, store.Log(ctx, event))
	require.NoError(t, store.Log(ctx, types.ActivityRecord{UserID: uuid.New(), Verb: VerbEmailUpdated}))

	page, err := store.ListActivity(ctx, types.ActivityFilter{
		UserID:     userID,
		Verbs:      []string{VerbSkillsUpdated},
		Pagination: types.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	require.Equal(t, VerbSkillsUpdated, page.Records[0].Verb)
	require.Equal(t, ChannelProfile, page.Records[0].Channel)
	require.Equal(t, ObjectProfile, page.Records[0].ObjectType)
	require.NotZero(t, page.Records[0].OccurredAt)
	require.False(t, page.HasMore)
}

func TestRepository_ScopeFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestActivityDB(t)
	applyActivityDDL(t, db)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	tenantA, tenantB := uuid.New(), uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Log(ctx, types.ActivityRecord{Verb: VerbLocationUpdated, TenantID: tenantA}))
	}
	require.NoError(t, store.Log(ctx, types.ActivityRecord{Verb: VerbLocationUpdated, TenantID: tenantB}))

	page, err := store.ListActivity(ctx, types.ActivityFilter{
		Scope:      types.ScopeFilter{TenantID: tenantA},
		Pagination: types.Pagination{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, page.Records, 2)
	require.Equal(t, 3, page.Total)
	require.True(t, page.HasMore)
}

func TestBuildRecordCopiesMetadata(t *testing.T) {
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()
	meta := map[string]any{"from": "draft"}

	record := BuildRecord(types.ActorRef{ID: actorID}, userID, types.ScopeFilter{TenantID: tenantID},
		VerbAccountSaved, "external_account", "acct-1", meta, WithChannel("admin"))

	require.Equal(t, actorID, record.ActorID)
	require.Equal(t, userID, record.UserID)
	require.Equal(t, tenantID, record.TenantID)
	require.Equal(t, "admin", record.Channel)

	meta["from"] = "mutated"
	require.Equal(t, "draft", record.Data["from"])

	empty := BuildRecord(types.ActorRef{ID: actorID}, userID, types.ScopeFilter{}, VerbAccountDeleted, "external_account", "acct-1", nil)
	require.NotNil(t, empty.Data)
	require.Empty(t, empty.Data)
}

func TestRepository_AccountHistory(t *testing.T) {
	ctx := context.Background()
	db := newTestActivityDB(t)
	applyActivityDDL(t, db)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	actor := types.ActorRef{ID: uuid.New()}
	userID, accountID := uuid.New(), uuid.New()
	require.NoError(t, store.Log(ctx, types.ActivityRecord{UserID: userID, ActorID: actor.ID, Verb: VerbEmailUpdated}))
	require.NoError(t, store.Log(ctx, BuildRecord(actor, userID, types.ScopeFilter{}, VerbAccountSaved, ObjectExternalAccount, accountID.String(), nil)))
	require.NoError(t, store.Log(ctx, BuildRecord(actor, userID, types.ScopeFilter{}, VerbAccountSaved, ObjectExternalAccount, uuid.NewString(), nil)))

	page, err := store.History(ctx, types.ScopeFilter{}, userID, accountID, types.Pagination{})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	require.Equal(t, accountID.String(), page.Records[0].ObjectID)

	page, err = store.ListActivity(ctx, types.ActivityFilter{UserID: userID, ObjectType: ObjectProfile})
	require.NoError(t, err)
	require.Len(t, page.Records, 1)
	require.Equal(t, userID.String(), page.Records[0].ObjectID)
	require.Equal(t, VerbEmailUpdated, page.Records[0].Verb)
}

func TestRepository_LogRejectsIncompleteRecords(t *testing.T) {
	ctx := context.Background()
	db := newTestActivityDB(t)
	applyActivityDDL(t, db)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	require.ErrorIs(t, store.Log(ctx, types.ActivityRecord{UserID: uuid.New()}), ErrVerbRequired)
	require.ErrorIs(t, store.Log(ctx, types.ActivityRecord{Verb: VerbAccountSaved, ObjectType: "group"}), ErrUnknownObject)

	page, err := store.ListActivity(ctx, types.ActivityFilter{})
	require.NoError(t, err)
	require.Zero(t, page.Total)
}

func TestSanitizer_MasksContactDetails(t *testing.T) {
	sanitizer := NewSanitizer(nil)
	profileRecord := types.ActivityRecord{
		ObjectType: ObjectProfile,
		Data: map[string]any{
			"email":          "person@example.com",
			"previous_email": "old@example.com",
			"skills":         "go",
		},
	}
	out := sanitizer.Record(profileRecord)
	require.NotEqual(t, "person@example.com", out.Data["email"])
	require.NotEqual(t, "old@example.com", out.Data["previous_email"])
	require.Equal(t, "go", out.Data["skills"])
	require.Equal(t, "person@example.com", profileRecord.Data["email"])

	private := types.ActivityRecord{
		ObjectType: ObjectExternalAccount,
		Data:       map[string]any{"identifier": "octocat", "type": "GITHUB", "privacy": float64(types.PrivacyMembers)},
	}
	require.NotEqual(t, "octocat", sanitizer.Record(private).Data["identifier"])
	require.Equal(t, "GITHUB", sanitizer.Record(private).Data["type"])

	public := types.ActivityRecord{
		ObjectType: ObjectExternalAccount,
		Data:       map[string]any{"identifier": "octocat", "privacy": int(types.PrivacyPublic)},
	}
	require.Equal(t, "octocat", sanitizer.Record(public).Data["identifier"])

	odd := types.ActivityRecord{Data: map[string]any{"email": 42, "identifier": "octocat"}}
	out = sanitizer.Record(odd)
	require.NotContains(t, out.Data, "email")
	require.NotEqual(t, "octocat", out.Data["identifier"])

	require.Len(t, sanitizer.Records([]types.ActivityRecord{profileRecord, {}}), 2)
}

func newTestActivityDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	return db
}

func applyActivityDDL(t *testing.T, db *bun.DB) {
	content, err := os.ReadFile("../data/sql/migrations/sqlite/00001_phonebook.up.sql")
	require.NoError(t, err)
	for _, stmt := range splitStatements(string(content)) {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func splitStatements(sql string) []string {
	lines := strings.Split(sql, "\n")
	var builder strings.Builder
	var statements []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
		} else {
			builder.WriteString(" ")
		}
	}
	if builder.Len() > 0 {
		statements = append(statements, builder.String())
	}
	return statements
}
