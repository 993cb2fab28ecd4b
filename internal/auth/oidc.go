// BibReaders - Library Catalog and Book Recommendations
// Copyright 2026 Raihana A. (RaihanaAm)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/RaihanaAm/Bib-Readers

package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/zitadel/oidc/v3/pkg/client/rp"
	"github.com/zitadel/oidc/v3/pkg/oidc"

	"github.com/RaihanaAm/Bib-Readers/internal/audit"
	"github.com/RaihanaAm/Bib-Readers/internal/config"
	"github.com/RaihanaAm/Bib-Readers/internal/database"
	"github.com/RaihanaAm/Bib-Readers/internal/logging"
	"github.com/RaihanaAm/Bib-Readers/internal/metrics"
	"github.com/RaihanaAm/Bib-Readers/internal/models"
)

const (
	// oidcStateTTL bounds how long a login round trip may take. States
	// older than this are rejected even if never consumed.
	oidcStateTTL = 10 * time.Minute

	// oidcHTTPTimeout applies to discovery and token endpoint calls.
	oidcHTTPTimeout = 30 * time.Second
)

// MemberDirectory is the slice of the member store the callback needs to
// map a federated identity onto a catalog member. *database.DB satisfies it.
type MemberDirectory interface {
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)
	CreateMember(ctx context.Context, member *models.Member) error
}

// oidcState tracks one in-flight authorization round trip. The nonce is
// echoed back inside the ID token and must match.
type oidcState struct {
	Nonce     string
	ExpiresAt time.Time
}

// oidcStateStore holds pending states in memory. Entries are single use:
// take removes the state so a replayed callback fails. Login traffic is low
// enough that abandoned states are swept on each put rather than by a
// background goroutine.
type oidcStateStore struct {
	mu     sync.Mutex
	states map[string]oidcState
}

func newOIDCStateStore() *oidcStateStore {
	return &oidcStateStore{states: make(map[string]oidcState)}
}

func (s *oidcStateStore) put(key string, state oidcState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, v := range s.states {
		if now.After(v.ExpiresAt) {
			delete(s.states, k)
		}
	}
	s.states[key] = state
}

// take returns and removes the state for key. The second return is false
// when the key is unknown, already consumed, or expired.
func (s *oidcStateStore) take(key string) (oidcState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[key]
	if !ok {
		return oidcState{}, false
	}
	delete(s.states, key)
	if time.Now().After(state.ExpiresAt) {
		return oidcState{}, false
	}
	return state, true
}

func (s *oidcStateStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

// OIDCFlow drives the optional single sign-on path. The relying party is
// built once at startup against the configured issuer; Login and Callback
// are mounted under /api/v1/auth/oidc only when the flow is configured.
//
// A federated identity is mapped onto a catalog member by verified email.
// First-time visitors get a member row with a random password hash, so the
// password login path stays closed for them. Successful logins are issued
// the same JWT and session registry entry the password flow produces.
type OIDCFlow struct {
	relyingParty rp.RelyingParty
	states       *oidcStateStore
	members      MemberDirectory
	tokens       *JWTManager
	sessions     SessionStore
	hasher       *PasswordHasher
	auditor      *audit.Logger
}

// SetAuditLogger wires the optional audit trail. When set, federated
// logins and their failures are recorded.
//
// Thread Safety: call once during startup, before serving.
func (f *OIDCFlow) SetAuditLogger(auditor *audit.Logger) {
	f.auditor = auditor
}

// NewOIDCFlow builds the relying party for the configured issuer. This
// performs OIDC discovery, so the issuer must be reachable at startup.
// Callers should not construct a flow when cfg.Enabled is false.
//
// The client authenticates with its secret; requested scopes default to
// openid, profile and email when the configuration leaves them empty.
func NewOIDCFlow(
	ctx context.Context,
	cfg *config.OIDCConfig,
	members MemberDirectory,
	tokens *JWTManager,
	sessions SessionStore,
	hasher *PasswordHasher,
) (*OIDCFlow, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, fmt.Errorf("oidc login is not enabled")
	}
	if cfg.IssuerURL == "" || cfg.ClientID == "" || cfg.RedirectURL == "" {
		return nil, fmt.Errorf("oidc login requires issuer_url, client_id and redirect_url")
	}
	if members == nil || tokens == nil || sessions == nil || hasher == nil {
		return nil, fmt.Errorf("oidc login requires member store, token manager, sessions and hasher")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "profile", "email"}
	}

	relyingParty, err := rp.NewRelyingPartyOIDC(ctx,
		cfg.IssuerURL,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.RedirectURL,
		scopes,
		rp.WithHTTPClient(&http.Client{Timeout: oidcHTTPTimeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create relying party: %w", err)
	}

	return &OIDCFlow{
		relyingParty: relyingParty,
		states:       newOIDCStateStore(),
		members:      members,
		tokens:       tokens,
		sessions:     sessions,
		hasher:       hasher,
	}, nil
}

// Login initiates the authorization flow.
// GET /api/v1/auth/oidc/login
//
// The browser is redirected to the identity provider with a fresh state
// and nonce; both are held server side until the callback returns.
func (f *OIDCFlow) Login(w http.ResponseWriter, r *http.Request) {
	stateKey, err := randomToken(32)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to generate login state")
		http.Error(w, "Failed to initiate login", http.StatusInternalServerError)
		return
	}
	nonce, err := randomToken(32)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to generate login nonce")
		http.Error(w, "Failed to initiate login", http.StatusInternalServerError)
		return
	}

	authURL, err := withNonce(rp.AuthURL(stateKey, f.relyingParty), nonce)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to build authorization URL")
		http.Error(w, "Failed to initiate login", http.StatusInternalServerError)
		return
	}

	f.states.put(stateKey, oidcState{
		Nonce:     nonce,
		ExpiresAt: time.Now().Add(oidcStateTTL),
	})

	logging.Ctx(r.Context()).Debug().
		Str("state", stateKey[:8]+"...").
		Msg("Redirecting to identity provider")

	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback completes the authorization flow.
// GET /api/v1/auth/oidc/callback?code=...&state=...
//
// On success the browser is redirected to / with the issued JWT in the
// URL fragment. Fragments never reach the server, which keeps the token
// out of access logs; the page script stores it and cleans the address
// bar. Failures redirect to /login with a short reason code in the
// fragment so the form can surface a message.
func (f *OIDCFlow) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logging.Ctx(ctx)

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		log.Warn().
			Str("error", errParam).
			Str("description", r.URL.Query().Get("error_description")).
			Msg("Identity provider rejected the login")
		f.failLogin(w, r, "", "provider")
		return
	}

	code := r.URL.Query().Get("code")
	stateKey := r.URL.Query().Get("state")
	if code == "" || stateKey == "" {
		log.Warn().Msg("Login callback missing code or state")
		f.failLogin(w, r, "", "missing_params")
		return
	}

	pending, ok := f.states.take(stateKey)
	if !ok {
		log.Warn().Msg("Login callback with unknown or expired state")
		f.failLogin(w, r, "", "state")
		return
	}

	tokens, err := rp.CodeExchange[*oidc.IDTokenClaims](ctx, code, f.relyingParty)
	if err != nil {
		log.Error().Err(err).Msg("Token exchange failed")
		f.failLogin(w, r, "", "exchange")
		return
	}

	claims := tokens.IDTokenClaims
	if claims == nil || claims.Nonce != pending.Nonce {
		log.Warn().Msg("ID token nonce mismatch")
		f.failLogin(w, r, "", "nonce")
		return
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" || !bool(claims.EmailVerified) {
		log.Warn().Msg("Identity provider did not supply a verified email")
		f.failLogin(w, r, email, "email")
		return
	}

	member, err := f.lookupOrCreateMember(ctx, email, displayName(claims, email))
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve member for federated login")
		f.failLogin(w, r, email, "member")
		return
	}
	if !member.IsActive {
		log.Warn().Int64("member_id", member.ID).Msg("Federated login for inactive member")
		f.failLogin(w, r, email, "inactive")
		return
	}

	token, issued, err := f.tokens.GenerateToken(member)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token after federated login")
		f.failLogin(w, r, email, "token")
		return
	}
	session, err := NewSession(issued)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build session after federated login")
		f.failLogin(w, r, email, "session")
		return
	}
	if err := f.sessions.Create(ctx, session); err != nil {
		log.Error().Err(err).Msg("Failed to register session after federated login")
		f.failLogin(w, r, email, "session")
		return
	}

	metrics.RecordLogin(true)
	if count, err := f.sessions.Count(ctx); err == nil {
		metrics.ActiveSessions.Set(float64(count))
	}
	if f.auditor != nil {
		actor := audit.ActorFromMember(member.ID, member.Name, member.Role, "oidc", issued.ID)
		f.auditor.LogAuthSuccess(ctx, actor, audit.SourceFromRequest(r), "oidc")
	}
	log.Info().Int64("member_id", member.ID).Msg("Member logged in through identity provider")

	http.Redirect(w, r, "/#token="+token, http.StatusFound)
}

// failLogin records the failure and sends the browser back to the sign-in
// form with a reason code the page script can translate into a message.
// Email is empty for failures before the ID token was decoded.
func (f *OIDCFlow) failLogin(w http.ResponseWriter, r *http.Request, email, reason string) {
	metrics.RecordLogin(false)
	if f.auditor != nil {
		f.auditor.LogAuthFailure(r.Context(), email, audit.SourceFromRequest(r), "oidc: "+reason)
	}
	http.Redirect(w, r, "/login#sso_error="+reason, http.StatusFound)
}

// lookupOrCreateMember resolves the member row for a verified email,
// creating one on first login. The placeholder password hash never
// verifies, so such accounts can only sign in through the provider.
func (f *OIDCFlow) lookupOrCreateMember(ctx context.Context, email, name string) (*models.Member, error) {
	member, err := f.members.GetMemberByEmail(ctx, email)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("look up member: %w", err)
	}

	hash, err := f.hasher.RandomPasswordHash()
	if err != nil {
		return nil, fmt.Errorf("generate placeholder password: %w", err)
	}
	member = &models.Member{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleMember,
		IsActive:     true,
	}
	if err := f.members.CreateMember(ctx, member); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			// Lost a race against a concurrent first login.
			return f.members.GetMemberByEmail(ctx, email)
		}
		return nil, fmt.Errorf("create member: %w", err)
	}

	metrics.AuthRegistrations.Inc()
	logging.Ctx(ctx).Info().
		Int64("member_id", member.ID).
		Msg("Created member from federated identity")
	return member, nil
}

// displayName picks a member name from the ID token profile claims,
// falling back to the email address.
func displayName(claims *oidc.IDTokenClaims, email string) string {
	if name := strings.TrimSpace(claims.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(claims.PreferredUsername); name != "" {
		return name
	}
	return email
}

// withNonce adds the nonce parameter to the authorization URL so the
// provider echoes it back inside the ID token.
func withNonce(authURL, nonce string) (string, error) {
	parsed, err := url.Parse(authURL)
	if err != nil {
		return "", fmt.Errorf("parse auth URL: %w", err)
	}
	query := parsed.Query()
	query.Set("nonce", nonce)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// randomToken returns n bytes of cryptographically secure randomness,
// base64url encoded without padding.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
