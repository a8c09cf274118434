package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/steveiliop56/tinynotion/internal/config"
	"github.com/steveiliop56/tinynotion/internal/model"
	"github.com/steveiliop56/tinynotion/internal/utils"
)

var (
	ErrNoToken      = errors.New("notion did not return a token")
	ErrNoSession    = errors.New("no stored session")
	ErrRevokeFailed = errors.New("notion did not revoke the token")
)

type SessionStore interface {
	GetItem(ctx context.Context, key string) (string, error)
	DeleteItem(ctx context.Context, key string) error
	SetSecureItem(ctx context.Context, key string, value string) error
	GetSecureItem(ctx context.Context, key string) (string, error)
	DeleteSecureItem(ctx context.Context, key string) error
	GetUserData(ctx context.Context, userID string) (model.User, error)
	DeleteUserData(ctx context.Context, userID string) error
}

// SessionService keeps the local copy of the Notion login in sync with the
// provider
type SessionService struct {
	notion *NotionOAuthService
	store  SessionStore
}

func NewSessionService(notion *NotionOAuthService, store SessionStore) *SessionService {
	return &SessionService{
		notion: notion,
		store:  store,
	}
}

func (session *SessionService) Init() error {
	if session.notion == nil {
		return errors.New("notion oauth service is required")
	}
	return nil
}

func (session *SessionService) Login(ctx context.Context, code string) (string, error) {
	token, err := session.notion.ExchangeCode(ctx, code)

	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}

	if token == "" {
		utils.AuditLoginFailure()
		return "", ErrNoToken
	}

	err = session.store.SetSecureItem(ctx, config.TokenStorageKey, token)

	if err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	userID, _ := session.store.GetItem(ctx, config.UserStorageKey)
	utils.AuditLoginSuccess(userID)

	return token, nil
}

func (session *SessionService) CurrentToken(ctx context.Context) (string, error) {
	token, err := session.store.GetSecureItem(ctx, config.TokenStorageKey)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSession
	}

	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return token, nil
}

func (session *SessionService) CurrentUser(ctx context.Context) (model.User, error) {
	userID, err := session.store.GetItem(ctx, config.UserStorageKey)

	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNoSession
	}

	if err != nil {
		return model.User{}, fmt.Errorf("failed to read user id: %w", err)
	}

	user, err := session.store.GetUserData(ctx, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNoSession
	}

	if err != nil {
		return model.User{}, fmt.Errorf("failed to read user data: %w", err)
	}

	return user, nil
}

// Validate introspects the stored token, nil means unknown
func (session *SessionService) Validate(ctx context.Context) (*bool, error) {
	token, err := session.CurrentToken(ctx)

	if err != nil {
		return nil, err
	}

	return session.notion.ValidateToken(ctx, token)
}

// Logout revokes the stored token and only clears local state once Notion
// confirmed the revocation
func (session *SessionService) Logout(ctx context.Context) error {
	token, err := session.CurrentToken(ctx)

	if err != nil {
		return err
	}

	res, err := session.notion.RevokeToken(ctx, token)

	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	userID, err := session.store.GetItem(ctx, config.UserStorageKey)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	if res == nil {
		utils.AuditLogoutFailure(userID)
		return ErrRevokeFailed
	}

	if userID != "" {
		err = session.store.DeleteUserData(ctx, userID)

		if err != nil {
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}

	err = session.store.DeleteItem(ctx, config.UserStorageKey)

	if err != nil {
		return fmt.Errorf("failed to delete user id: %w", err)
	}

	err = session.store.DeleteSecureItem(ctx, config.TokenStorageKey)

	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	utils.AuditLogout(userID)

	return nil
}
