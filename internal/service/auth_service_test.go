package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/config"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
)

func authFixture(t *testing.T) (*AuthService, *fakeAccountRepo, *captureDispatcher) {
	t.Helper()
	accounts := newFakeAccountRepo()
	dispatcher := &captureDispatcher{}
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 15
	cfg.Auth.BcryptCost = 4
	svc := NewAuthService(cfg, AuthDependencies{
		AccountRepo: accounts,
		Denylist:    auth.NewDenylist(nil),
		Dispatcher:  dispatcher,
	})
	return svc, accounts, dispatcher
}

func seedAccount(t *testing.T, accounts *fakeAccountRepo, username, password string) domain.Account {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return accounts.add(domain.Account{Username: username, PasswordHash: hash}, nil)
}

func TestLogin(t *testing.T) {
	svc, accounts, dispatcher := authFixture(t)
	account := seedAccount(t, accounts, "jdoe", "correct-horse")

	got, token, exp, err := svc.Login(context.Background(), "jdoe", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.NotEmpty(t, claims.ID)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventUserLoggedIn, dispatcher.published[0].Type)
	assert.Equal(t, domain.ActionLogin, dispatcher.published[0].Action)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, accounts, dispatcher := authFixture(t)
	seedAccount(t, accounts, "jdoe", "correct-horse")

	_, _, _, badPassword := svc.Login(context.Background(), "jdoe", "wrong")
	_, _, _, noSuchUser := svc.Login(context.Background(), "ghost", "wrong")

	require.Error(t, badPassword)
	require.Error(t, noSuchUser)
	assert.Equal(t, badPassword.Error(), noSuchUser.Error())
	assert.Empty(t, dispatcher.published)
}

func TestChangePassword(t *testing.T) {
	svc, accounts, _ := authFixture(t)
	account := seedAccount(t, accounts, "jdoe", "old-password")

	err := svc.ChangePassword(context.Background(), account.ID, "wrong", "new-password")
	require.Error(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), account.ID, "old-password", "new-password"))
	_, _, _, err = svc.Login(context.Background(), "jdoe", "new-password")
	assert.NoError(t, err)
	_, _, _, err = svc.Login(context.Background(), "jdoe", "old-password")
	assert.Error(t, err)
}
