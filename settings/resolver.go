package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	opts "github.com/goliatone/go-options"
	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// Keys understood by the resolver.
const (
	KeyItemsPerPage   = "items_per_page"
	KeyDefaultPrivacy = "default_privacy"
)

// Level identifies a settings layer.
type Level string

const (
	LevelSystem Level = "system"
	LevelTenant Level = "tenant"
	LevelOrg    Level = "org"
)

// Directory is the effective configuration for directory forms.
type Directory struct {
	ItemsPerPage   int
	DefaultPrivacy types.PrivacyLevel
	// Values is the merged raw layer payload.
	Values map[string]any
}

// Source supplies the override payload of one layer. A nil map means the
// layer has no overrides.
type Source interface {
	Overrides(ctx context.Context, level Level, scope types.ScopeFilter) (map[string]any, error)
}

// ResolverConfig wires dependencies for the settings resolver.
type ResolverConfig struct {
	Source   Source
	Defaults map[string]any
}

// Resolver merges system, tenant and org layers via go-options.
type Resolver struct {
	source   Source
	defaults map[string]any
}

// DefaultValues returns the built-in system layer.
func DefaultValues() map[string]any {
	return map[string]any{
		KeyItemsPerPage:   20,
		KeyDefaultPrivacy: int(types.PrivacyMembers),
	}
}

// NewResolver constructs a settings resolver. A nil Source resolves to the
// defaults for every scope.
func NewResolver(cfg ResolverConfig) *Resolver {
	defaults := DefaultValues()
	for k, v := range cfg.Defaults {
		defaults[k] = v
	}
	return &Resolver{
		source:   cfg.Source,
		defaults: defaults,
	}
}

// Resolve builds the effective directory settings for scope.
func (r *Resolver) Resolve(ctx context.Context, scope types.ScopeFilter) (Directory, error) {
	levels := []Level{LevelSystem}
	if scope.TenantID != uuid.Nil {
		levels = append(levels, LevelTenant)
	}
	if scope.OrgID != uuid.Nil {
		levels = append(levels, LevelOrg)
	}

	layers := make([]opts.Layer[map[string]any], 0, len(levels))
	for _, level := range levels {
		payload := map[string]any{}
		if level == LevelSystem {
			payload = cloneMap(r.defaults)
		}
		if r.source != nil {
			overrides, err := r.source.Overrides(ctx, level, scope)
			if err != nil {
				return Directory{}, fmt.Errorf("settings: load %s layer: %w", level, err)
			}
			for k, v := range overrides {
				payload[k] = v
			}
		}
		optScope := opts.NewScope(string(level), levelPriority(level),
			opts.WithScopeLabel(levelLabel(level)),
			opts.WithScopeMetadata(map[string]any{
				"tenant_id": scope.TenantID.String(),
				"org_id":    scope.OrgID.String(),
			}))
		layers = append(layers, opts.NewLayer(optScope, payload, opts.WithSnapshotID[map[string]any](optScope.Name)))
	}

	stack, err := opts.NewStack(layers...)
	if err != nil {
		return Directory{}, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return Directory{}, err
	}
	return r.directory(merged.Value), nil
}

func (r *Resolver) directory(values map[string]any) Directory {
	out := Directory{
		ItemsPerPage:   20,
		DefaultPrivacy: types.PrivacyMembers,
		Values:         cloneMap(values),
	}
	if n, ok := toInt(r.defaults[KeyItemsPerPage]); ok && n > 0 {
		out.ItemsPerPage = n
	}
	if n, ok := toInt(values[KeyItemsPerPage]); ok && n > 0 {
		out.ItemsPerPage = n
	}
	if n, ok := toInt(values[KeyDefaultPrivacy]); ok && types.PrivacyLevel(n).Valid() {
		out.DefaultPrivacy = types.PrivacyLevel(n)
	}
	return out
}

func levelPriority(level Level) int {
	switch level {
	case LevelOrg:
		return opts.ScopePriorityOrg
	case LevelTenant:
		return opts.ScopePriorityTenant
	default:
		return opts.ScopePrioritySystem
	}
}

func levelLabel(level Level) string {
	switch level {
	case LevelOrg:
		return "Organization"
	case LevelTenant:
		return "Tenant"
	default:
		return "System Defaults"
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
