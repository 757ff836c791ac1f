package providers

import (
	"github.com/samber/do/v2"

	"github.com/daylogapp/daylog-server/internal/config"
	"github.com/daylogapp/daylog-server/internal/logger"
	"github.com/daylogapp/daylog-server/internal/memos"
)

// ProvideMemosClient provides the Memos forwarding client. The client is
// always constructed; with no base URL configured it reports itself disabled.
func ProvideMemosClient(i do.Injector) (*memos.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := memos.NewClient(cfg.Memos.BaseURL, log.Logger)
	if client.Enabled() {
		log.Info("Memos forwarding enabled", "base_url", cfg.Memos.BaseURL)
	} else {
		log.Info("Memos forwarding disabled")
	}

	return client, nil
}
