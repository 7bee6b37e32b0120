package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/expenseflow/internal/auth"
	"github.com/mmynk/expenseflow/internal/expense"
	"github.com/mmynk/expenseflow/internal/idempotency"
	"github.com/mmynk/expenseflow/internal/middleware"
	"github.com/mmynk/expenseflow/internal/storage/sqlite"
	"github.com/mmynk/expenseflow/pkg/api"
	"github.com/mmynk/expenseflow/pkg/api/apiconnect"
)

type testServer struct {
	expenses *apiconnect.ExpenseServiceClient
	auth     *apiconnect.AuthServiceClient
	groups   *apiconnect.GroupServiceClient
}

// setupTestServer serves all three services over httptest with real token auth on a
// fresh SQLite database.
func setupTestServer(t *testing.T, guard idempotency.Guard) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	interceptors := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(expense.NewService(store), guard), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store), interceptors))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testServer{
		expenses: apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		auth:     apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
	}
}

type testUser struct {
	ID    string
	Token string
}

func (s *testServer) register(t *testing.T, name string) testUser {
	t.Helper()
	resp, err := s.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       name + "@example.com",
		DisplayName: name,
		Password:    "correct horse",
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", name, err)
	}
	return testUser{ID: resp.Msg.User.ID, Token: resp.Msg.Token}
}

// as wraps msg in a request authenticated as u.
func as[T any](u testUser, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+u.Token)
	return req
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %s, got %s (%v)", want, got, err)
	}
}

// memGuard is an in-memory idempotency.Guard.
type memGuard struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemGuard() *memGuard { return &memGuard{keys: make(map[string]bool)} }

func (g *memGuard) Claim(_ context.Context, scope, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.keys[scope+"/"+key] {
		return false, nil
	}
	g.keys[scope+"/"+key] = true
	return true, nil
}

func (g *memGuard) Release(_ context.Context, scope, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, scope+"/"+key)
	return nil
}
