// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"chatshot-be/internal/config"
	"chatshot-be/internal/dto"
	"chatshot-be/internal/entity"
	"chatshot-be/internal/pkg/avatar"
	"chatshot-be/internal/pkg/logger"
	"chatshot-be/internal/repository/contract"
	"chatshot-be/internal/repository/memory"
	"chatshot-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	credentials contract.CredentialRepository
	stores      contract.StoreRepository
	sessions    *memory.SessionRepository
	publisher   message.Publisher
	log         logger.ILogger
	authCfg     config.AuthConfig
}

func NewAuthService(
	credentials contract.CredentialRepository,
	stores contract.StoreRepository,
	sessions *memory.SessionRepository,
	publisher message.Publisher,
	log logger.ILogger,
	authCfg config.AuthConfig,
) IAuthService {
	return &authService{
		credentials: credentials,
		stores:      stores,
		sessions:    sessions,
		publisher:   publisher,
		log:         log,
		authCfg:     authCfg,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	id := strings.TrimSpace(req.Id)
	if id == "" || req.Password == "" {
		return nil, ErrInvalidInput
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrInvalidInput
	}

	exists, err := s.credentials.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{Id: id, PasswordHash: string(hash)}
	if err := s.credentials.Create(ctx, account); err != nil {
		return nil, err
	}

	if err := events.Publish(s.publisher, events.New(events.TypeAccountRegistered, map[string]interface{}{
		"account_id": id,
	})); err != nil {
		s.log.Warn("auth", "failed to publish register event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.RegisterResponse{Id: id}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	id := strings.TrimSpace(req.Id)
	if id == "" || req.Password == "" {
		return nil, ErrAuthenticationFailed
	}

	// Unknown id and wrong password both come back as the same generic
	// failure so account ids cannot be enumerated.
	account, err := s.credentials.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	accountKey := deriveSessionKey(id, req.Password)
	session := s.buildSession(ctx, id, accountKey)
	s.sessions.Save(session)

	claims := jwt.MapClaims{
		"session_id":  session.Id,
		"account_key": accountKey,
		"exp":         time.Now().Add(time.Duration(s.authCfg.SessionTTLMinutes) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.authCfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	if err := events.Publish(s.publisher, events.New(events.TypeSessionStarted, map[string]interface{}{
		"account_id": id,
		"session_id": session.Id,
	})); err != nil {
		s.log.Warn("auth", "failed to publish login event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.LoginResponse{Token: signedToken, SessionId: session.Id}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	s.sessions.Delete(sessionID)
	return nil
}

// buildSession runs load resolution: the account store file populates profile
// settings and the saved list when it parses, anything else falls back to
// defaults. A fresh session always starts with an empty working chat, so no
// state can leak between accounts.
func (s *authService) buildSession(ctx context.Context, accountId, accountKey string) *entity.Session {
	store, fallback, err := s.stores.Load(ctx, accountKey)
	if err != nil || fallback {
		details := map[string]interface{}{"path": s.stores.Path(accountKey)}
		if err != nil {
			details["error"] = err.Error()
		}
		s.log.Warn("session", "account store unreadable, starting from defaults", details)
		if pubErr := events.Publish(s.publisher, events.New(events.TypeStoreReadFailed, map[string]interface{}{
			"account_id": accountId,
		})); pubErr != nil {
			s.log.Warn("session", "failed to publish store event", map[string]interface{}{"error": pubErr.Error()})
		}
		store = nil
	}

	session := &entity.Session{
		Id:         uuid.New().String(),
		AccountId:  accountId,
		AccountKey: accountKey,
		Working: entity.WorkingChat{
			Title:    entity.DefaultChatTitle,
			Messages: []entity.Message{},
		},
		Profile:    entity.DefaultProfileSettings(avatar.TransparentPixel),
		SavedChats: []entity.SavedChat{},
		CreatedAt:  time.Now(),
	}
	if store != nil {
		session.Profile = entity.ProfileSettings{
			MeName:    store.MeName,
			OtherName: store.OtherName,
			MePic:     store.MePic,
			OtherPic:  store.OtherPic,
		}
		session.SavedChats = store.SavedChats
	}
	return session
}

// deriveSessionKey maps an account deterministically to the name of its store
// file. Truncated hex keeps file names short while staying collision
// resistant for any realistic account count.
func deriveSessionKey(id, password string) string {
	sum := sha256.Sum256([]byte(id + "\x00" + password))
	return hex.EncodeToString(sum[:])[:32]
}
