package services

import (
	portsrepo "github.com/SscSPs/dealflow/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/platform/config"
	"github.com/SscSPs/dealflow/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// collector may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collector *metrics.Collector) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)

	var dealOpts []DealServiceOption
	var memoOpts []MemoServiceOption
	if collector != nil {
		dealOpts = append(dealOpts, WithDealMetrics(collector))
		memoOpts = append(memoOpts, WithMemoMetrics(collector))
	}
	container.Deal = NewDealService(repos.DealRepo, repos.ActivityRepo, dealOpts...)
	container.Memo = NewMemoService(repos.MemoRepo, repos.DealRepo, memoOpts...)

	container.TokenService = NewTokenService(cfg, repos.RevokedRepo)

	if cfg.GoogleOAuthEnabled() {
		container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	}

	return container
}
