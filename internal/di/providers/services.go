package providers

import (
	"github.com/samber/do/v2"

	"github.com/daylogapp/daylog-server/internal/auth"
	"github.com/daylogapp/daylog-server/internal/logger"
	"github.com/daylogapp/daylog-server/internal/memos"
	"github.com/daylogapp/daylog-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideUserService provides the user management service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, log.Logger), nil
}

// ProvideLogService provides the daily log service.
func ProvideLogService(i do.Injector) (*service.LogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	memosClient := do.MustInvoke[*memos.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLogService(storeHandle.Store, memosClient, log.Logger), nil
}

// ProvideQuickTagService provides the quick tag service.
func ProvideQuickTagService(i do.Injector) (*service.QuickTagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQuickTagService(storeHandle.Store, log.Logger), nil
}

// ProvideSettingService provides the user settings service.
func ProvideSettingService(i do.Injector) (*service.SettingService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSettingService(storeHandle.Store, log.Logger), nil
}
