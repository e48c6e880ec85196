package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	analyticsvc "github.com/datemarket/app/backend/internal/services/analytics"
	authsvc "github.com/datemarket/app/backend/internal/services/auth"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
	"github.com/datemarket/app/backend/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService      *authsvc.Service
	LedgerService    *ledgersvc.Service
	AnalyticsService *analyticsvc.Service
	Logger           *zap.Logger
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	swipeHandler := handlers.NewSwipeHandler(deps.LedgerService)
	recallHandler := handlers.NewRecallHandler(deps.LedgerService)
	matchesHandler := handlers.NewMatchesHandler(deps.LedgerService)
	candidatesHandler := handlers.NewCandidatesHandler(deps.LedgerService)
	eventsHandler := handlers.NewEventsHandler(deps.AnalyticsService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/swipes", swipeHandler.Handle)
		r.Get("/swipes", swipeHandler.List)
		r.Post("/superlike", swipeHandler.SuperLike)
		r.Post("/recall", recallHandler.Handle)
		r.Get("/matches", matchesHandler.Handle)
		r.Post("/candidates/undecided", candidatesHandler.Undecided)
		r.Post("/events/batch", eventsHandler.Batch)
	})
}
