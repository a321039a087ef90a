package phonebook

import "github.com/goliatone/go-phonebook/service"

// Re-export the service package entry point so consumers can do
// `phonebook.New(...)` without importing internal wiring helpers.
type (
	Service  = service.Service
	Config   = service.Config
	Commands = service.Commands
	Queries  = service.Queries
	Settings = service.Settings
)

// New constructs the go-phonebook runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}
