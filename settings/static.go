package settings

import (
	"context"
	"sync"

	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/google/uuid"
)

// StaticSource keeps per-tenant and per-org overrides in memory.
type StaticSource struct {
	mu      sync.RWMutex
	system  map[string]any
	tenants map[uuid.UUID]map[string]any
	orgs    map[uuid.UUID]map[string]any
}

var _ Source = (*StaticSource)(nil)

// NewStaticSource returns an empty source.
func NewStaticSource() *StaticSource {
	return &StaticSource{
		system:  map[string]any{},
		tenants: map[uuid.UUID]map[string]any{},
		orgs:    map[uuid.UUID]map[string]any{},
	}
}

// SetSystem sets a key on the system layer.
func (s *StaticSource) SetSystem(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.system[key] = value
}

// SetTenant sets a key for one tenant.
func (s *StaticSource) SetTenant(tenantID uuid.UUID, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set(s.tenants, tenantID, key, value)
}

// SetOrg sets a key for one org.
func (s *StaticSource) SetOrg(orgID uuid.UUID, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set(s.orgs, orgID, key, value)
}

// Overrides implements Source.
func (s *StaticSource) Overrides(ctx context.Context, level Level, scope types.ScopeFilter) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch level {
	case LevelTenant:
		return cloneMap(s.tenants[scope.TenantID]), nil
	case LevelOrg:
		return cloneMap(s.orgs[scope.OrgID]), nil
	default:
		return cloneMap(s.system), nil
	}
}

func set(target map[uuid.UUID]map[string]any, id uuid.UUID, key string, value any) {
	values := target[id]
	if values == nil {
		values = map[string]any{}
		target[id] = values
	}
	values[key] = value
}
