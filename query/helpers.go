package query

import (
	"context"

	"github.com/goliatone/go-phonebook/pkg/types"
	"github.com/goliatone/go-phonebook/scope"
	"github.com/goliatone/go-phonebook/settings"
)

// DirectorySettings resolves the effective directory configuration.
type DirectorySettings interface {
	Resolve(ctx context.Context, scope types.ScopeFilter) (settings.Directory, error)
}

func safeScopeGuard(guard scope.Guard) scope.Guard {
	return scope.Ensure(guard)
}
