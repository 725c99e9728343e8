package bootstrap

import (
	"github.com/osse101/FishBot_Go/internal/config"
	"github.com/osse101/FishBot_Go/internal/server"
)

// NewServer builds the HTTP server over the wired services
func NewServer(cfg *config.Config, svc *Services, jobs *Jobs) *server.Server {
	return server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}, serverServices(svc, jobs))
}

func serverServices(svc *Services, jobs *Jobs) server.Services {
	return server.Services{
		DB:           svc.Store,
		Users:        svc.Users,
		Fishing:      svc.Fishing,
		Gacha:        svc.Gacha,
		Technology:   svc.Technology,
		Achievements: svc.Achievements,
		Economy:      svc.Economy,
		SignIn:       svc.SignIn,
		Wager:        svc.Wager,
		Market:       svc.Market,
		AutoFishing:  jobs.AutoFishing,
	}
}
