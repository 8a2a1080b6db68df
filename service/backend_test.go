package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/voyager/config"
	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/internal/eth"
	"github.com/layer-3/voyager/ports"
)

// Well-known development key pair.
const (
	testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testUID = "test-uid-123"
)

// fakeBackend simulates the game backend: the four auth endpoints plus a
// scripted GraphQL endpoint, counting every hit per path.
type fakeBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	authHits map[string]int
	queries  []string

	// onGraphQL scripts the /graphql endpoint; nil answers every query
	// with a minimal account-resources payload.
	onGraphQL func(query string, vars map[string]any) any

	// Failure injection knobs.
	payloadFails  int    // fail this many initial challenge requests with a 500
	emptyPayload  bool   // respond {"payload":null} to challenge requests
	identityErr   string // identity exchange answers {"error":{"message":...}}
	noCookie      bool   // session login omits the Set-Cookie header
	sessionCookie string

	idToken string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	b := &fakeBackend{
		t:             t,
		authHits:      map[string]int{},
		sessionCookie: "sess-abc123",
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": testUID}).
		SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	b.idToken = token

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/payload", b.handlePayload)
	mux.HandleFunc("/auth/login", b.handleLogin)
	mux.HandleFunc("/identity", b.handleIdentity)
	mux.HandleFunc("/api/1/session/login", b.handleSessionLogin)
	mux.HandleFunc("/graphql", b.handleGraphQL)

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) hit(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.authHits[path]++
	return b.authHits[path]
}

func (b *fakeBackend) hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.authHits[path]
}

func (b *fakeBackend) authCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	total := 0
	for path, n := range b.authHits {
		if path != "/graphql" {
			total += n
		}
	}
	return total
}

func (b *fakeBackend) sentQueries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *fakeBackend) handlePayload(w http.ResponseWriter, r *http.Request) {
	n := b.hit("/auth/payload")
	if n <= b.payloadFails {
		http.Error(w, "challenge service unavailable", http.StatusInternalServerError)
		return
	}

	var req struct {
		Address string `json:"address"`
		ChainID string `json:"chainId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChainID != config.ChainID {
		b.t.Errorf("bad challenge request: err=%v chainId=%q", err, req.ChainID)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if b.emptyPayload {
		writeJSON(w, map[string]any{"payload": nil})
		return
	}
	writeJSON(w, map[string]any{"payload": &core.Challenge{
		Domain:    "voyager.preview.craft-world.gg",
		Address:   req.Address,
		Statement: "Sign in to Craft World",
		URI:       "https://voyager.preview.craft-world.gg",
		Version:   "1",
		ChainID:   req.ChainID,
		Nonce:     "nonce-1",
		IssuedAt:  "2025-01-01T00:00:00Z",
	}})
}

// handleLogin verifies the signature actually recovers the challenge
// address before handing out the custom token.
func (b *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	b.hit("/auth/login")

	var req struct {
		Payload struct {
			Payload   *core.Challenge `json:"Payload"`
			Signature string          `json:"Signature"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Payload.Payload == nil {
		b.t.Errorf("bad login request: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	sig, err := hexutil.Decode(req.Payload.Signature)
	if err != nil || len(sig) != 65 {
		b.t.Errorf("bad signature encoding: %v", err)
		http.Error(w, "bad signature", http.StatusUnauthorized)
		return
	}
	sig[64] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(req.Payload.Payload.SignText())), sig)
	if err != nil || crypto.PubkeyToAddress(*pub).Hex() != req.Payload.Payload.Address {
		b.t.Errorf("signature does not recover challenge address")
		http.Error(w, "bad signature", http.StatusUnauthorized)
		return
	}

	writeJSON(w, map[string]any{"customToken": "ct-1"})
}

func (b *fakeBackend) handleIdentity(w http.ResponseWriter, r *http.Request) {
	b.hit("/identity")
	if b.identityErr != "" {
		writeJSON(w, map[string]any{"error": map[string]any{"message": b.identityErr}})
		return
	}
	writeJSON(w, map[string]any{"idToken": b.idToken})
}

func (b *fakeBackend) handleSessionLogin(w http.ResponseWriter, r *http.Request) {
	b.hit("/api/1/session/login")
	if !b.noCookie {
		w.Header().Add("Set-Cookie", "session="+b.sessionCookie+"; Path=/; HttpOnly; Secure")
	}
	writeJSON(w, map[string]any{})
}

func (b *fakeBackend) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	b.hit("/graphql")

	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		b.t.Errorf("bad graphql request: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.queries = append(b.queries, req.Query)
	b.mu.Unlock()

	if b.onGraphQL != nil {
		writeJSON(w, b.onGraphQL(req.Query, req.Variables))
		return
	}
	writeJSON(w, map[string]any{"data": map[string]any{
		"account": map[string]any{
			"resources": []map[string]any{{"symbol": "COIN", "amount": "12.5"}},
		},
	}})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// testConfig points every endpoint at the fake backend and zeroes all
// delays so tests run instantly.
func testConfig(t *testing.T, baseURL string) *config.Config {
	return &config.Config{
		SessionDir:         t.TempDir(),
		DataDir:            t.TempDir(),
		PaidChestAllowance: 10,
		LoginRetries:       3,
		LoginRetryDelay:    0,
		HTTPTimeout:        5 * time.Second,
		BaseURL:            baseURL,
		GraphQLURL:         baseURL + "/graphql",
		AuthPayloadURL:     baseURL + "/auth/payload",
		AuthLoginURL:       baseURL + "/auth/login",
		SessionLoginURL:    baseURL + "/api/1/session/login",
		IdentityURL:        baseURL + "/identity",
	}
}

func newTestClient(t *testing.T, b *fakeBackend, sessions ports.SessionStore) (*SessionClient, *config.Config) {
	t.Helper()
	wallet, err := eth.ParseKey(testKey)
	require.NoError(t, err)

	cfg := testConfig(t, b.srv.URL)
	client, err := NewSessionClient(context.Background(), wallet, cfg, sessions, nil, watermill.NopLogger{}, "")
	require.NoError(t, err)
	return client, cfg
}
