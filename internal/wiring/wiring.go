// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/hob/internal/adapters/config"
	_ "go.trai.ch/hob/internal/adapters/logger"
	_ "go.trai.ch/hob/internal/adapters/shell"
	_ "go.trai.ch/hob/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/hob/internal/app"
)
