// Package di provides dependency injection configuration for the Daylog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/daylogapp/daylog-server/internal/auth"
	"github.com/daylogapp/daylog-server/internal/config"
	"github.com/daylogapp/daylog-server/internal/di/providers"
	"github.com/daylogapp/daylog-server/internal/logger"
	"github.com/daylogapp/daylog-server/internal/memos"
	"github.com/daylogapp/daylog-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// External integrations
	do.Provide(injector, providers.ProvideMemosClient)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideLogService)
	do.Provide(injector, providers.ProvideQuickTagService)
	do.Provide(injector, providers.ProvideSettingService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)
	_ = do.MustInvoke[*memos.Client](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.UserService](injector)
	_ = do.MustInvoke[*service.LogService](injector)
	_ = do.MustInvoke[*service.QuickTagService](injector)
	_ = do.MustInvoke[*service.SettingService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
