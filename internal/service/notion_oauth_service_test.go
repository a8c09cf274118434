package service_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/steveiliop56/tinynotion/internal/model"
	"github.com/steveiliop56/tinynotion/internal/service"

	"gotest.tools/v3/assert"
)

type recordedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    map[string]any
}

type fakeNotion struct {
	server   *httptest.Server
	mu       sync.Mutex
	status   int
	body     string
	requests []recordedRequest
}

func newFakeNotion(t *testing.T, status int, body string) *fakeNotion {
	fake := &fakeNotion{
		status: status,
		body:   body,
	}

	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)

		var reqBody map[string]any
		_ = json.Unmarshal(raw, &reqBody)

		fake.mu.Lock()
		fake.requests = append(fake.requests, recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Headers: r.Header.Clone(),
			Body:    reqBody,
		})
		status, body := fake.status, fake.body
		fake.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))

	t.Cleanup(fake.server.Close)

	return fake
}

func (fake *fakeNotion) respond(status int, body string) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.status = status
	fake.body = body
}

func (fake *fakeNotion) recorded() []recordedRequest {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return append([]recordedRequest(nil), fake.requests...)
}

func (fake *fakeNotion) serviceConfig() service.NotionOAuthServiceConfig {
	return service.NotionOAuthServiceConfig{
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		RedirectURL:   "https://example.com/api/oauth/callback",
		AuthURL:       fake.server.URL + "/v1/oauth/authorize",
		TokenURL:      fake.server.URL + "/v1/oauth/token",
		IntrospectURL: fake.server.URL + "/v1/oauth/introspect",
		RevokeURL:     fake.server.URL + "/v1/oauth/revoke",
	}
}

type memoryKV struct {
	items map[string]string
}

func (kv *memoryKV) SetItem(_ context.Context, key string, value string) error {
	kv.items[key] = value
	return nil
}

type memoryUsers struct {
	users map[string]model.User
}

func (store *memoryUsers) StoreUserData(_ context.Context, userID string, user model.User) error {
	store.users[userID] = user
	return nil
}

type countingClient struct {
	calls int
	next  service.HTTPClient
}

func (client *countingClient) Do(req *http.Request) (*http.Response, error) {
	client.calls++
	return client.next.Do(req)
}

func newTestNotionService(fake *fakeNotion) (*service.NotionOAuthService, *memoryKV, *memoryUsers, *countingClient) {
	kv := &memoryKV{items: map[string]string{}}
	users := &memoryUsers{users: map[string]model.User{}}
	client := &countingClient{next: fake.server.Client()}
	notion := service.NewNotionOAuthService(fake.serviceConfig(), client, kv, users)
	return notion, kv, users, client
}

const tokenResponseBody = `{
	"access_token": "tok123",
	"token_type": "bearer",
	"bot_id": "bot-1",
	"workspace_id": "ws-1",
	"owner": {
		"type": "user",
		"user": {"id": "u1", "name": "N", "email": "e@x.com", "avatar_url": "http://img"}
	}
}`

func TestNotionServiceInit(t *testing.T) {
	fake := newFakeNotion(t, 200, "{}")

	notion, _, _, _ := newTestNotionService(fake)
	assert.NilError(t, notion.Init())

	cfg := fake.serviceConfig()
	cfg.ClientID = ""
	notion = service.NewNotionOAuthService(cfg, fake.server.Client(), nil, nil)
	assert.ErrorContains(t, notion.Init(), "client id is required")

	cfg = fake.serviceConfig()
	cfg.ClientSecret = ""
	notion = service.NewNotionOAuthService(cfg, fake.server.Client(), nil, nil)
	assert.ErrorContains(t, notion.Init(), "client secret is required")

	cfg = fake.serviceConfig()
	cfg.RedirectURL = ""
	notion = service.NewNotionOAuthService(cfg, fake.server.Client(), nil, nil)
	assert.ErrorContains(t, notion.Init(), "redirect url is required")

	notion = service.NewNotionOAuthService(fake.serviceConfig(), nil, nil, nil)
	assert.ErrorContains(t, notion.Init(), "http client is required")
}

func TestEncodeCredentials(t *testing.T) {
	notion := service.NewNotionOAuthService(service.NotionOAuthServiceConfig{
		ClientID:     "a",
		ClientSecret: "b",
	}, nil, nil, nil)

	decoded, err := base64.StdEncoding.DecodeString(notion.EncodeCredentials())
	assert.NilError(t, err)
	assert.Equal(t, "a:b", string(decoded))
}

func TestGetAuthURL(t *testing.T) {
	fake := newFakeNotion(t, 200, "{}")
	notion, _, _, _ := newTestNotionService(fake)

	state := notion.GenerateState()
	assert.Assert(t, state != "")
	assert.Assert(t, state != notion.GenerateState())

	authURL, err := notion.GetAuthURL(state)
	assert.NilError(t, err)

	parsed, err := url.Parse(authURL)
	assert.NilError(t, err)
	assert.Equal(t, "/v1/oauth/authorize", parsed.Path)

	values := parsed.Query()
	assert.Equal(t, "client-id", values.Get("client_id"))
	assert.Equal(t, "code", values.Get("response_type"))
	assert.Equal(t, "user", values.Get("owner"))
	assert.Equal(t, "https://example.com/api/oauth/callback", values.Get("redirect_uri"))
	assert.Equal(t, state, values.Get("state"))
}

func TestExchangeCodeEmpty(t *testing.T) {
	fake := newFakeNotion(t, 200, tokenResponseBody)
	notion, kv, users, client := newTestNotionService(fake)

	token, err := notion.ExchangeCode(context.Background(), "")

	assert.NilError(t, err)
	assert.Equal(t, "", token)
	assert.Equal(t, 0, client.calls)
	assert.Equal(t, 0, len(fake.recorded()))
	assert.Equal(t, 0, len(kv.items))
	assert.Equal(t, 0, len(users.users))
}

func TestExchangeCode(t *testing.T) {
	fake := newFakeNotion(t, 200, tokenResponseBody)
	notion, kv, users, _ := newTestNotionService(fake)

	token, err := notion.ExchangeCode(context.Background(), "auth-code")

	assert.NilError(t, err)
	assert.Equal(t, "tok123", token)

	// Storage side effects
	assert.DeepEqual(t, map[string]string{"user": "u1"}, kv.items)
	assert.DeepEqual(t, map[string]model.User{
		"u1": {
			ID:    "u1",
			Name:  "N",
			Email: "e@x.com",
			Image: "http://img",
		},
	}, users.users)

	// Request shape
	requests := fake.recorded()
	assert.Equal(t, 1, len(requests))

	req := requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/oauth/token", req.Path)
	assert.Equal(t, "application/json", req.Headers.Get("Accept"))
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("client-id:client-secret")), req.Headers.Get("Authorization"))
	assert.DeepEqual(t, map[string]any{
		"grant_type":   "authorization_code",
		"code":         "auth-code",
		"redirect_uri": "https://example.com/api/oauth/callback",
	}, req.Body)
}

func TestExchangeCodePersonEmail(t *testing.T) {
	fake := newFakeNotion(t, 200, `{
		"access_token": "tok456",
		"owner": {
			"type": "user",
			"user": {"id": "u2", "name": "P", "avatar_url": null, "person": {"email": "p@x.com"}}
		}
	}`)
	notion, _, users, _ := newTestNotionService(fake)

	token, err := notion.ExchangeCode(context.Background(), "auth-code")

	assert.NilError(t, err)
	assert.Equal(t, "tok456", token)
	assert.DeepEqual(t, model.User{ID: "u2", Name: "P", Email: "p@x.com"}, users.users["u2"])
}

func TestExchangeCodeProviderError(t *testing.T) {
	fake := newFakeNotion(t, 400, `{"error": "invalid_grant", "error_description": "Invalid code."}`)
	notion, kv, users, _ := newTestNotionService(fake)

	token, err := notion.ExchangeCode(context.Background(), "used-code")

	assert.NilError(t, err)
	assert.Equal(t, "", token)
	assert.Equal(t, 0, len(kv.items))
	assert.Equal(t, 0, len(users.users))

	// Non json error payloads are handled the same way
	fake.respond(502, "Bad Gateway")

	token, err = notion.ExchangeCode(context.Background(), "used-code")

	assert.NilError(t, err)
	assert.Equal(t, "", token)
	assert.Equal(t, 0, len(kv.items))
}

func TestExchangeCodeMalformedResponse(t *testing.T) {
	fake := newFakeNotion(t, 200, `{"access_token": "tok789", "owner": {"type": "workspace", "workspace": true}}`)
	notion, kv, users, _ := newTestNotionService(fake)

	token, err := notion.ExchangeCode(context.Background(), "auth-code")

	assert.ErrorContains(t, err, "no owner user")
	assert.Equal(t, "", token)
	assert.Equal(t, 0, len(kv.items))
	assert.Equal(t, 0, len(users.users))

	fake.respond(200, `not json`)

	_, err = notion.ExchangeCode(context.Background(), "auth-code")
	assert.ErrorContains(t, err, "failed to decode token response")

	fake.respond(200, `{"owner": {"type": "user", "user": {"id": "u1"}}}`)

	_, err = notion.ExchangeCode(context.Background(), "auth-code")
	assert.ErrorContains(t, err, "no access token")
	assert.Equal(t, 0, len(kv.items))
}

func TestExchangeCodeTransportError(t *testing.T) {
	fake := newFakeNotion(t, 200, tokenResponseBody)
	notion, kv, _, _ := newTestNotionService(fake)

	fake.server.Close()

	token, err := notion.ExchangeCode(context.Background(), "auth-code")

	assert.ErrorContains(t, err, "failed to perform request")
	assert.Equal(t, "", token)
	assert.Equal(t, 0, len(kv.items))
}

func TestValidateToken(t *testing.T) {
	fake := newFakeNotion(t, 200, `{"active": true, "scope": "read_content", "iat": 1727554061}`)
	notion, _, _, _ := newTestNotionService(fake)

	active, err := notion.ValidateToken(context.Background(), "tok123")

	assert.NilError(t, err)
	assert.Assert(t, active != nil)
	assert.Equal(t, true, *active)

	requests := fake.recorded()
	assert.Equal(t, 1, len(requests))
	assert.Equal(t, "/v1/oauth/introspect", requests[0].Path)
	assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("client-id:client-secret")), requests[0].Headers.Get("Authorization"))
	assert.DeepEqual(t, map[string]any{"token": "tok123"}, requests[0].Body)

	// Explicit false is not the same as unknown
	fake.respond(200, `{"active": false}`)

	active, err = notion.ValidateToken(context.Background(), "tok123")

	assert.NilError(t, err)
	assert.Assert(t, active != nil)
	assert.Equal(t, false, *active)

	// Provider error
	fake.respond(401, `{"object": "error", "status": 401, "code": "unauthorized"}`)

	active, err = notion.ValidateToken(context.Background(), "tok123")

	assert.NilError(t, err)
	assert.Assert(t, active == nil)
}

func TestValidateTokenIsNotCached(t *testing.T) {
	fake := newFakeNotion(t, 200, `{"active": true}`)
	notion, _, _, client := newTestNotionService(fake)

	_, err := notion.ValidateToken(context.Background(), "tok123")
	assert.NilError(t, err)

	_, err = notion.ValidateToken(context.Background(), "tok123")
	assert.NilError(t, err)

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, 2, len(fake.recorded()))
}

func TestRevokeToken(t *testing.T) {
	fake := newFakeNotion(t, 200, `{}`)
	notion, kv, users, client := newTestNotionService(fake)

	res, err := notion.RevokeToken(context.Background(), "tok123")

	assert.NilError(t, err)
	assert.Assert(t, res != nil)
	assert.Equal(t, 0, len(res))

	requests := fake.recorded()
	assert.Equal(t, "/v1/oauth/revoke", requests[0].Path)
	assert.DeepEqual(t, map[string]any{"token": "tok123"}, requests[0].Body)

	// Body is passed through
	fake.respond(200, `{"object": "revocation", "revoked": true}`)

	res, err = notion.RevokeToken(context.Background(), "tok123")

	assert.NilError(t, err)
	assert.DeepEqual(t, map[string]any{"object": "revocation", "revoked": true}, res)

	// Empty body
	fake.respond(200, ``)

	res, err = notion.RevokeToken(context.Background(), "tok123")

	assert.NilError(t, err)
	assert.Assert(t, res != nil)

	// Provider error
	fake.respond(400, `{"error": "invalid_token"}`)

	res, err = notion.RevokeToken(context.Background(), "tok123")

	assert.NilError(t, err)
	assert.Assert(t, res == nil)

	// Every call hits the provider and never writes locally
	assert.Equal(t, 4, client.calls)
	assert.Equal(t, 0, len(kv.items))
	assert.Equal(t, 0, len(users.users))
}
