package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/FishBot_Go/internal/achievement"
	"github.com/osse101/FishBot_Go/internal/economy"
	"github.com/osse101/FishBot_Go/internal/fishing"
	"github.com/osse101/FishBot_Go/internal/gacha"
	"github.com/osse101/FishBot_Go/internal/handler"
	"github.com/osse101/FishBot_Go/internal/logger"
	"github.com/osse101/FishBot_Go/internal/market"
	"github.com/osse101/FishBot_Go/internal/metrics"
	"github.com/osse101/FishBot_Go/internal/signin"
	"github.com/osse101/FishBot_Go/internal/technology"
	"github.com/osse101/FishBot_Go/internal/user"
	"github.com/osse101/FishBot_Go/internal/wager"
)

// Options configures the listener and the auth layer
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
}

// Services are the game services the routes call into
type Services struct {
	DB           handler.Pinger
	Users        user.Service
	Fishing      fishing.Service
	Gacha        gacha.Service
	Technology   technology.Service
	Achievements achievement.Evaluator
	Economy      economy.Service
	SignIn       signin.Service
	Wager        wager.Service
	Market       market.Service
	AutoFishing  handler.AutoFishingSweeper
}

// Server is the HTTP API
type Server struct {
	httpServer *http.Server
}

// NewServer builds the router and the http.Server. Nothing listens until Start.
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// NewRouter wires middleware and routes. Health, readiness and metrics are
// public; everything under /api/v1 requires the API key.
func NewRouter(opts Options, svc Services) http.Handler {
	detector := NewActivityDetector()
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.DB))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	users := handler.NewUserHandlers(svc.Users)
	tech := handler.NewTechnologyHandlers(svc.Technology)
	shop := handler.NewShopHandlers(svc.Economy)
	mkt := handler.NewMarketHandlers(svc.Market)
	admin := handler.NewAdminHandlers(svc.Users, svc.Economy, svc.Technology, svc.AutoFishing)
	resolve := handler.ResolveUser(svc.Users)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
		r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))

		r.Post("/users", users.HandleRegister)
		r.Get("/shop", shop.HandleEntries)
		r.Get("/gacha/pools", handler.HandleGachaPools(svc.Gacha))
		r.Get("/wager/table", handler.HandleWagerTable(svc.Wager))
		r.Get("/market/listings", mkt.HandleBrowse)

		r.Route("/users/{platform}/{platformID}", func(r chi.Router) {
			r.Use(resolve)

			r.Get("/", users.HandleProfile)
			r.Get("/inventory", users.HandleInventory)
			r.Post("/equip", users.HandleEquip)
			r.Get("/titles", users.HandleTitles)
			r.Put("/titles/current", users.HandleSetTitle)
			r.Get("/achievements", handler.HandleAchievements(svc.Achievements))

			r.Post("/fish", handler.HandleFish(svc.Fishing))
			r.Get("/fish/cooldown", handler.HandleFishingCooldown(svc.Fishing))

			r.Post("/gacha/{poolID}/single", handler.HandleGachaDraw(svc.Gacha, false))
			r.Post("/gacha/{poolID}/ten", handler.HandleGachaDraw(svc.Gacha, true))

			r.Get("/tech", tech.HandleList)
			r.Post("/tech/{techKey}/unlock", tech.HandleUnlock)

			r.Post("/shop/buy", shop.HandleBuy)
			r.Post("/shop/sell", shop.HandleSellFish)
			r.Post("/pond/upgrade", shop.HandleUpgradePond)

			r.Post("/signin", handler.HandleSignIn(svc.SignIn))
			r.Post("/wager", handler.HandleWager(svc.Wager))

			r.Post("/market/listings", mkt.HandleCreate)
			r.Post("/market/listings/{listingID}/buy", mkt.HandleBuy)
			r.Delete("/market/listings/{listingID}", mkt.HandleDelist)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/auto-fishing/sweep", admin.HandleAutoFishingSweep)
			r.Get("/cache/stats", admin.HandleCacheStats)

			r.Route("/users/{platform}/{platformID}", func(r chi.Router) {
				r.Use(resolve)
				r.Post("/gold", admin.HandleGrantGold)
				r.Put("/auto-fishing", admin.HandleSetAutoFishing)
				r.Post("/tech/sweep", admin.HandleTechnologySweep)
			})
		})
	})

	return r
}

// Start blocks serving HTTP until Stop is called
func (s *Server) Start() error {
	logger.FromContext(context.Background()).Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx expires
func (s *Server) Stop(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
