// Package server assembles the HTTP surface: connect services, metrics and health.
package server

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/expenseflow/internal/auth"
	"github.com/mmynk/expenseflow/internal/expense"
	"github.com/mmynk/expenseflow/internal/idempotency"
	"github.com/mmynk/expenseflow/internal/middleware"
	"github.com/mmynk/expenseflow/internal/service"
	"github.com/mmynk/expenseflow/internal/storage"
	"github.com/mmynk/expenseflow/pkg/api/apiconnect"
)

// Deps are the collaborators the router wires into the services.
type Deps struct {
	Store          storage.Store
	JWT            *auth.JWTManager
	Authenticator  auth.Authenticator
	Idempotency    idempotency.Guard
	AllowedOrigins []string
}

// NewRouter builds the root handler. Connect procedures require a bearer token except
// registration and login.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			"Connect-Protocol-Version", "Connect-Timeout-Ms", service.IdempotencyKeyHeader,
		},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}))

	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(d.JWT,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(),
	)

	expenses := expense.NewService(d.Store)
	r.Mount(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(expenses, d.Idempotency), interceptors))
	r.Mount(apiconnect.NewAuthServiceHandler(service.NewAuthService(d.Authenticator, d.JWT, d.Store), interceptors))
	r.Mount(apiconnect.NewGroupServiceHandler(service.NewGroupService(d.Store), interceptors))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthz)
	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	body, err := structpb.NewStruct(map[string]any{"status": "ok"})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out, err := protojson.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}
