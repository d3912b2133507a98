package services

import (
	"context"
	"testing"
	"time"
	"travelwise/internal/models/request_models"
	"travelwise/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountService() (AccountServiceInterface, *fakeAccountRepo, *fakeSessionRepo, *utils.TokenManager) {
	accounts := newFakeAccountRepo()
	sessions := newFakeSessionRepo()
	tokens := utils.NewTokenManager("account-test-secret", time.Hour)
	return NewAccountService(accounts, sessions, tokens, nil), accounts, sessions, tokens
}

var asha = request_models.SignUpRequest{
	FullName: "Asha Rao",
	Email:    "Asha@Example.com",
	Phone:    "+91 98450 00000",
	Password: "hunter22",
}

func TestSignUp_CreatesAccountWithHashedPassword(t *testing.T) {
	svc, accounts, _, _ := newTestAccountService()

	resp, err := svc.SignUp(context.Background(), asha)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", resp.Email)
	assert.NotEmpty(t, resp.ID)

	stored := accounts.accounts[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, asha.Password, stored.PasswordHash)
	assert.NoError(t, utils.ComparePasswords(stored.PasswordHash, asha.Password))
}

func TestSignUp_RejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestAccountService()

	_, err := svc.SignUp(context.Background(), asha)
	require.NoError(t, err)

	dup := asha
	dup.Email = " asha@example.COM "
	_, err = svc.SignUp(context.Background(), dup)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	exists, err := svc.ExistsByEmail(context.Background(), "ASHA@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSignUp_StoreFailureIsDatabaseError(t *testing.T) {
	svc, accounts, _, _ := newTestAccountService()
	accounts.failAll = true

	_, err := svc.SignUp(context.Background(), asha)
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestLogin_IssuesTokenAndWritesSession(t *testing.T) {
	svc, _, sessions, tokens := newTestAccountService()
	created, err := svc.SignUp(context.Background(), asha)
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), request_models.LoginRequest{Email: "asha@example.com", Password: "hunter22"})
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.AccountID)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	session := sessions.sessions[created.ID]
	require.NotNil(t, session)
	assert.Equal(t, "Asha Rao", session.FullName)
	assert.Equal(t, time.Hour, sessions.ttls[created.ID])
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	_, err := svc.SignUp(context.Background(), asha)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{Email: "asha@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestGetProfile_RequiresLiveSession(t *testing.T) {
	svc, accounts, _, _ := newTestAccountService()
	created, err := svc.SignUp(context.Background(), asha)
	require.NoError(t, err)

	_, err = svc.GetProfile(context.Background(), created.ID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	_, err = svc.Login(context.Background(), request_models.LoginRequest{Email: asha.Email, Password: asha.Password})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, asha.Phone, profile.Phone)
	require.NoError(t, svc.RequireSession(context.Background(), created.ID))

	// database down: the session snapshot still answers
	accounts.failAll = true
	profile, err = svc.GetProfile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", profile.FullName)
	accounts.failAll = false
}

func TestLogout_EndsSession(t *testing.T) {
	svc, _, sessions, _ := newTestAccountService()
	created, err := svc.SignUp(context.Background(), asha)
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), request_models.LoginRequest{Email: asha.Email, Password: asha.Password})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), created.ID))
	assert.Empty(t, sessions.sessions)

	_, err = svc.GetProfile(context.Background(), created.ID)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
	assert.ErrorIs(t, svc.RequireSession(context.Background(), created.ID), utils.ErrSessionNotFound)
}
