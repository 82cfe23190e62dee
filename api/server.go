package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/spaceship-staking/app"
	"github.com/dan13ram/spaceship-staking/models"
)

const (
	APIServiceName = "API"

	defaultSignatureMaxAge = 5 * time.Minute
	shutdownTimeout        = 10 * time.Second
)

// NewApp builds the fiber application with every route registered.
func NewApp(l Ledger, payments PaymentVerifier, clock clockwork.Clock, signatureMaxAge time.Duration, nonces NonceStore) *fiber.App {
	if signatureMaxAge <= 0 {
		signatureMaxAge = defaultSignatureMaxAge
	}

	server := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})

	h := NewHandlers(l, payments)
	signed := SignatureAuth(clock, signatureMaxAge, nonces)

	server.Get("/missions", h.GetMissions)
	server.Get("/missions/count", h.GetMissionCount)
	server.Get("/missions/:id", h.GetMission)
	server.Get("/missions/:id/launches/count", h.GetMissionLaunchCount)
	server.Get("/users/count", h.GetUsersLaunchedMission)
	server.Get("/users/:address/launches", h.GetLaunchesOfUser)
	server.Get("/users/:address/missions/:id/count", h.GetLaunchedMissionPerMissionIdsCountForUser)
	server.Get("/users/:address/missions/:id/launches/:index", h.GetLaunchedMissionOfUser)
	server.Get("/native-balance", h.GetNativeBalance)

	server.Post("/missions", signed, h.AddMission)
	server.Post("/missions/:id/disable", signed, h.DisableMission)
	server.Post("/missions/:id/launches", signed, h.StartMission)
	server.Post("/missions/:id/launches/:index/claim-reward", signed, h.ClaimReward)
	server.Post("/missions/:id/launches/:index/claim-token", signed, h.ClaimToken)

	return server
}

type Server struct {
	app           *fiber.App
	listenAddress string
	wg            *sync.WaitGroup

	healthMu sync.RWMutex
	health   models.ServiceHealth
}

func (x *Server) Start() {
	log.Info("[API] Listening on ", x.listenAddress)
	x.setHealthy(true)
	if err := x.app.Listen(x.listenAddress); err != nil {
		log.WithError(err).Error("[API] Server stopped")
	}
	x.setHealthy(false)
	x.wg.Done()
}

func (x *Server) Stop() {
	log.Debug("[API] Stopping server")
	if err := x.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.WithError(err).Error("[API] Error shutting down server")
	}
}

func (x *Server) setHealthy(healthy bool) {
	x.healthMu.Lock()
	defer x.healthMu.Unlock()

	now := time.Now()
	x.health = models.ServiceHealth{
		Name:         APIServiceName,
		LastSyncTime: now,
		NextSyncTime: now,
		Healthy:      healthy,
	}
}

func (x *Server) Health() models.ServiceHealth {
	x.healthMu.RLock()
	defer x.healthMu.RUnlock()

	health := x.health
	health.LastSyncTime = time.Now()
	health.NextSyncTime = health.LastSyncTime
	return health
}

func NewServer(wg *sync.WaitGroup, l Ledger, payments PaymentVerifier) app.Service {
	if !app.Config.API.Enabled {
		log.Debug("[API] API disabled")
		return app.NewEmptyService(wg)
	}

	clock := clockwork.NewRealClock()
	x := &Server{
		app: NewApp(
			l,
			payments,
			clock,
			time.Duration(app.Config.API.SignatureMaxAgeSec)*time.Second,
			NewDatabaseNonceStore(app.DB, clock),
		),
		listenAddress: app.Config.API.ListenAddress,
		wg:            wg,
	}
	x.setHealthy(false)

	return x
}
