// Package settings resolves directory configuration (page size, default
// privacy for new external accounts) by layering system defaults, tenant
// overrides and org overrides with go-options.
package settings
