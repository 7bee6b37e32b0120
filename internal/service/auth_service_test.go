package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/expenseflow/pkg/api"
)

func TestRegisterAndLogin(t *testing.T) {
	s := setupTestServer(t, nil)
	ctx := context.Background()

	alice := s.register(t, "alice")
	assert.NotEmpty(t, alice.Token)

	_, err := s.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "ALICE@example.com", DisplayName: "Alice again", Password: "another password",
	}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = s.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "bob@example.com", DisplayName: "Bob", Password: "short",
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = s.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "wrong password"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	login, err := s.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "correct horse"}))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, login.Msg.User.ID)

	me, err := s.auth.GetCurrentUser(ctx, as(testUser{Token: login.Msg.Token}, &api.GetCurrentUserRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Msg.User.DisplayName)
	assert.Equal(t, "alice@example.com", me.Msg.User.Email)

	_, err = s.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}
