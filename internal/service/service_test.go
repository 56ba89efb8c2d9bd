package service

import (
	"context"
	"testing"
	"time"

	"chatshot-be/internal/config"
	"chatshot-be/internal/dto"
	"chatshot-be/internal/repository/implementation"
	"chatshot-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type testEnv struct {
	auth IAuthService
	chat IChatService
	dir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	credentialRepo := implementation.NewCredentialRepository(dir)
	storeRepo := implementation.NewStoreRepository(dir)
	sessionRepo := memory.NewSessionRepository(time.Hour)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	log := nopLogger{}

	authCfg := config.AuthConfig{JWTSecret: "test_secret", SessionTTLMinutes: 60}

	return &testEnv{
		auth: NewAuthService(credentialRepo, storeRepo, sessionRepo, pubSub, log, authCfg),
		chat: NewChatService(sessionRepo, storeRepo, pubSub, log),
		dir:  dir,
	}
}

// registerAndLogin creates an account and returns a live session id.
func (e *testEnv) registerAndLogin(t *testing.T, id, password string) string {
	t.Helper()
	ctx := context.Background()

	_, err := e.auth.Register(ctx, &dto.RegisterRequest{
		Id: id, Password: password, ConfirmPassword: password,
	})
	require.NoError(t, err)

	res, err := e.auth.Login(ctx, &dto.LoginRequest{Id: id, Password: password})
	require.NoError(t, err)
	return res.SessionId
}
