package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/steveiliop56/tinynotion/internal/config"
	"github.com/steveiliop56/tinynotion/internal/model"
	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/google/go-querystring/query"
	"github.com/google/uuid"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type KeyValueStore interface {
	SetItem(ctx context.Context, key string, value string) error
}

type UserStore interface {
	StoreUserData(ctx context.Context, userID string, user model.User) error
}

type NotionTokenRequest struct {
	GrantType   string `json:"grant_type"`
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

type NotionTokenBody struct {
	Token string `json:"token"`
}

type NotionUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Person    struct {
		Email string `json:"email"`
	} `json:"person"`
}

type NotionOwner struct {
	Type string      `json:"type"`
	User *NotionUser `json:"user"`
}

type NotionTokenResponse struct {
	AccessToken   string       `json:"access_token"`
	TokenType     string       `json:"token_type"`
	BotID         string       `json:"bot_id"`
	WorkspaceID   string       `json:"workspace_id"`
	WorkspaceName string       `json:"workspace_name"`
	WorkspaceIcon string       `json:"workspace_icon"`
	Owner         *NotionOwner `json:"owner"`
}

type NotionIntrospectResponse struct {
	Active bool `json:"active"`
}

type NotionOAuthServiceConfig struct {
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	AuthURL       string
	TokenURL      string
	IntrospectURL string
	RevokeURL     string
}

type NotionOAuthService struct {
	config NotionOAuthServiceConfig
	client HTTPClient
	kv     KeyValueStore
	users  UserStore
}

func NewNotionOAuthService(config NotionOAuthServiceConfig, client HTTPClient, kv KeyValueStore, users UserStore) *NotionOAuthService {
	return &NotionOAuthService{
		config: config,
		client: client,
		kv:     kv,
		users:  users,
	}
}

func (notion *NotionOAuthService) Init() error {
	if notion.config.ClientID == "" {
		return errors.New("notion client id is required")
	}

	if notion.config.ClientSecret == "" {
		return errors.New("notion client secret is required")
	}

	if notion.config.RedirectURL == "" {
		return errors.New("notion redirect url is required")
	}

	if notion.client == nil {
		return errors.New("http client is required")
	}

	return nil
}

func (notion *NotionOAuthService) EncodeCredentials() string {
	return utils.GetBasicAuth(notion.config.ClientID, notion.config.ClientSecret)
}

func (notion *NotionOAuthService) GenerateState() string {
	return uuid.New().String()
}

func (notion *NotionOAuthService) GetAuthURL(state string) (string, error) {
	values, err := query.Values(config.AuthorizeQuery{
		ClientID:     notion.config.ClientID,
		ResponseType: "code",
		Owner:        "user",
		RedirectURI:  notion.config.RedirectURL,
		State:        state,
	})

	if err != nil {
		return "", fmt.Errorf("failed to encode authorize query: %w", err)
	}

	return fmt.Sprintf("%s?%s", notion.config.AuthURL, values.Encode()), nil
}

// ExchangeCode trades an authorization code for an access token and stores the
// token owner. An empty code or a provider error yields an empty token and a
// nil error.
func (notion *NotionOAuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", nil
	}

	status, body, err := notion.post(ctx, notion.config.TokenURL, NotionTokenRequest{
		GrantType:   "authorization_code",
		Code:        code,
		RedirectURI: notion.config.RedirectURL,
	})

	if err != nil {
		return "", err
	}

	if !isSuccess(status) {
		notion.logProviderError("Error converting code to token", status, body)
		return "", nil
	}

	var tokenRes NotionTokenResponse

	err = json.Unmarshal(body, &tokenRes)
	if err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenRes.Owner == nil || tokenRes.Owner.User == nil {
		return "", errors.New("token response has no owner user")
	}

	if tokenRes.AccessToken == "" {
		return "", errors.New("token response has no access token")
	}

	user := tokenRes.Owner.User.toModel()

	utils.Log.App.Debug().Interface("user", user).Msg("Got user from Notion")

	err = notion.kv.SetItem(ctx, config.UserStorageKey, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to store user id: %w", err)
	}

	err = notion.users.StoreUserData(ctx, user.ID, user)
	if err != nil {
		return "", fmt.Errorf("failed to store user data: %w", err)
	}

	return tokenRes.AccessToken, nil
}

// ValidateToken asks Notion whether token is active. A nil result means the
// provider could not confirm it either way.
func (notion *NotionOAuthService) ValidateToken(ctx context.Context, token string) (*bool, error) {
	status, body, err := notion.post(ctx, notion.config.IntrospectURL, NotionTokenBody{
		Token: token,
	})

	if err != nil {
		return nil, err
	}

	if !isSuccess(status) {
		notion.logProviderError("Error validating token", status, body)
		return nil, nil
	}

	var introspectRes NotionIntrospectResponse

	err = json.Unmarshal(body, &introspectRes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode introspect response: %w", err)
	}

	return &introspectRes.Active, nil
}

// RevokeToken revokes token at Notion and returns the provider response. A nil
// map means the revocation failed. Local state is never touched here.
func (notion *NotionOAuthService) RevokeToken(ctx context.Context, token string) (map[string]any, error) {
	status, body, err := notion.post(ctx, notion.config.RevokeURL, NotionTokenBody{
		Token: token,
	})

	if err != nil {
		return nil, err
	}

	utils.Log.App.Debug().Int("status", status).Bytes("response", body).Msg("Revoke token response")

	if !isSuccess(status) {
		notion.logProviderError("Error revoking token", status, body)
		return nil, nil
	}

	revokeRes := make(map[string]any)

	if len(bytes.TrimSpace(body)) == 0 {
		return revokeRes, nil
	}

	err = json.Unmarshal(body, &revokeRes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode revoke response: %w", err)
	}

	if revokeRes == nil {
		revokeRes = make(map[string]any)
	}

	return revokeRes, nil
}

func (notion *NotionOAuthService) post(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+notion.EncodeCredentials())

	res, err := notion.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return res.StatusCode, body, nil
}

func (notion *NotionOAuthService) logProviderError(msg string, status int, body []byte) {
	event := utils.Log.App.Error().Int("status", status)

	if json.Valid(body) {
		event = event.RawJSON("response", body)
	} else {
		event = event.Str("response", string(body))
	}

	event.Msg(msg)
}

func (user *NotionUser) toModel() model.User {
	email := user.Email

	if email == "" {
		email = user.Person.Email
	}

	return model.User{
		ID:    user.ID,
		Name:  user.Name,
		Email: email,
		Image: user.AvatarURL,
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
