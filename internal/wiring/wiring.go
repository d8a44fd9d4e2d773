// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.velin.dev/pipfile/internal/adapters/lockstore"
	_ "go.velin.dev/pipfile/internal/adapters/logger"
	_ "go.velin.dev/pipfile/internal/adapters/pipfile"
	_ "go.velin.dev/pipfile/internal/adapters/pypi"
	_ "go.velin.dev/pipfile/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.velin.dev/pipfile/internal/app"
	_ "go.velin.dev/pipfile/internal/engine/resolver"
)
