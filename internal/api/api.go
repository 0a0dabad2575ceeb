// Package api exposes the HTTP surface of Wanderlust: a JSON REST API
// under /api/v1 backed by the service layer, plus health and metrics
// endpoints. Routing uses net/http method patterns; metrics are labeled
// by registered pattern so path IDs never explode label cardinality.
package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ritpra93/wanderlust/internal/auth"
	"github.com/Ritpra93/wanderlust/internal/middleware"
	"github.com/Ritpra93/wanderlust/internal/service"
)

// Server holds the services behind the HTTP handlers.
type Server struct {
	auth      *service.AuthService
	trips     *service.TripService
	expenses  *service.ExpenseService
	itinerary *service.ItineraryService
	polls     *service.PollService

	jwtManager *auth.JWTManager
	validate   *validator.Validate
}

// NewServer wires the services into a Server.
func NewServer(
	authSvc *service.AuthService,
	trips *service.TripService,
	expenses *service.ExpenseService,
	itinerary *service.ItineraryService,
	polls *service.PollService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:       authSvc,
		trips:      trips,
		expenses:   expenses,
		itinerary:  itinerary,
		polls:      polls,
		jwtManager: jwtManager,
		validate:   newValidator(),
	}
}

// Routes builds the full route table.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /healthz", middleware.Metrics("GET /healthz",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.public(mux, "POST /api/v1/auth/register", s.handleRegister)
	s.public(mux, "POST /api/v1/auth/login", s.handleLogin)
	s.protected(mux, "GET /api/v1/auth/me", s.handleMe)

	s.protected(mux, "POST /api/v1/trips", s.handleCreateTrip)
	s.protected(mux, "GET /api/v1/trips", s.handleListTrips)
	s.protected(mux, "GET /api/v1/trips/{id}", s.handleGetTrip)
	s.protected(mux, "PATCH /api/v1/trips/{id}", s.handleUpdateTrip)
	s.protected(mux, "DELETE /api/v1/trips/{id}", s.handleDeleteTrip)
	s.protected(mux, "POST /api/v1/trips/{id}/members", s.handleAddMembers)
	s.protected(mux, "DELETE /api/v1/trips/{id}/members/{userId}", s.handleRemoveMember)

	s.protected(mux, "POST /api/v1/trips/{id}/expenses", s.handleCreateExpense)
	s.protected(mux, "GET /api/v1/trips/{id}/expenses", s.handleListExpenses)
	s.protected(mux, "GET /api/v1/trips/{id}/expenses/{expenseId}", s.handleGetExpense)
	s.protected(mux, "DELETE /api/v1/trips/{id}/expenses/{expenseId}", s.handleDeleteExpense)
	s.protected(mux, "GET /api/v1/trips/{id}/balances", s.handleBalances)
	s.protected(mux, "POST /api/v1/trips/{id}/settlements", s.handleRecordSettlement)
	s.protected(mux, "GET /api/v1/trips/{id}/settlements", s.handleListSettlements)

	s.protected(mux, "POST /api/v1/trips/{id}/itinerary", s.handleAddItineraryItem)
	s.protected(mux, "GET /api/v1/trips/{id}/itinerary", s.handleListItinerary)
	s.protected(mux, "PATCH /api/v1/trips/{id}/itinerary/{itemId}", s.handleUpdateItineraryItem)
	s.protected(mux, "DELETE /api/v1/trips/{id}/itinerary/{itemId}", s.handleDeleteItineraryItem)

	s.protected(mux, "POST /api/v1/trips/{id}/polls", s.handleCreatePoll)
	s.protected(mux, "GET /api/v1/trips/{id}/polls", s.handleListPolls)
	s.protected(mux, "GET /api/v1/trips/{id}/polls/{pollId}", s.handleGetPoll)
	s.protected(mux, "PATCH /api/v1/trips/{id}/polls/{pollId}", s.handleUpdatePoll)
	s.protected(mux, "POST /api/v1/trips/{id}/polls/{pollId}/votes", s.handleVote)

	return mux
}

// public registers an unauthenticated route with metrics and request
// logging.
func (s *Server) public(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, middleware.Metrics(pattern, middleware.Logging(h)))
}

// protected registers a route behind Bearer-token auth. Logging runs
// inside the auth middleware so the log lines carry the authenticated
// user; metrics stay outermost and count rejected requests too.
func (s *Server) protected(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	requireAuth := middleware.RequireAuth(s.jwtManager)
	mux.Handle(pattern, middleware.Metrics(pattern, requireAuth(middleware.Logging(h))))
}
