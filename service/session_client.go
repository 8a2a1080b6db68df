// Package service orchestrates the login protocol and the automation
// routines built on top of the authenticated GraphQL surface.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/layer-3/voyager/config"
	"github.com/layer-3/voyager/core"
	"github.com/layer-3/voyager/internal/browser"
	"github.com/layer-3/voyager/internal/eth"
	"github.com/layer-3/voyager/internal/idtoken"
	"github.com/layer-3/voyager/ports"
	"github.com/layer-3/voyager/transport/graphql"
)

// SessionClient owns one wallet's HTTP session and runs the login protocol:
//
//	NoSession -> ChallengeRequested -> ChallengeSigned -> TokenExchanged
//	          -> IdentityResolved -> SessionEstablished
//
// A usable persisted record plus a successful probe call short-circuits
// straight to SessionEstablished. Any step failure aborts the whole attempt;
// nothing is persisted until the final step succeeds.
type SessionClient struct {
	wallet *eth.Wallet
	cfg    *config.Config
	http   *graphql.Client
	store  ports.SessionStore
	events ports.EventPublisher
	log    watermill.LoggerAdapter
	uid    string
}

// NewSessionClient builds a client for one wallet, rehydrating session
// state from the store when a usable record exists. events may be nil.
func NewSessionClient(
	ctx context.Context,
	wallet *eth.Wallet,
	cfg *config.Config,
	sessions ports.SessionStore,
	events ports.EventPublisher,
	logger watermill.LoggerAdapter,
	proxyURI string,
) (*SessionClient, error) {
	var headers map[string]string
	var uid string

	record, err := sessions.Load(ctx, wallet.Address())
	switch {
	case err == nil && record.Usable():
		headers = record.CloneHeaders()
		uid = record.UID
	case err != nil && !errors.Is(err, core.ErrSessionNotFound):
		logger.Info("failed to load session, logging in from scratch", watermill.LogFields{
			"wallet": wallet.ShortAddress(),
			"err":    err.Error(),
		})
	}
	if headers == nil {
		headers = browser.Profile(cfg.BaseURL, browser.RandomUserAgent())
		logger.Info("no usable session found, created a new header profile", watermill.LogFields{
			"wallet": wallet.ShortAddress(),
		})
	}

	httpClient, err := graphql.NewClient(cfg.GraphQLURL, headers, cfg.HTTPTimeout, proxyURI)
	if err != nil {
		return nil, err
	}

	return &SessionClient{
		wallet: wallet,
		cfg:    cfg,
		http:   httpClient,
		store:  sessions,
		events: events,
		log:    logger,
		uid:    uid,
	}, nil
}

// Wallet returns the client's wallet identity.
func (c *SessionClient) Wallet() *eth.Wallet { return c.wallet }

// UID returns the opaque user id, empty until a session is established.
func (c *SessionClient) UID() string { return c.uid }

// Login establishes an authenticated session. A valid persisted session is
// reused without touching the auth endpoints; otherwise the full protocol
// runs, retried up to the configured limit with a fresh challenge each
// attempt (challenges are single use and never reused).
func (c *SessionClient) Login(ctx context.Context) error {
	fields := watermill.LogFields{"wallet": c.wallet.ShortAddress()}

	if c.uid != "" && c.http.Headers()["Cookie"] != "" && c.probe(ctx) {
		c.log.Info("current session is still valid", fields)
		return nil
	}

	c.log.Info("starting a new login", fields)

	var lastErr error
	for attempt := 1; attempt <= c.cfg.LoginRetries; attempt++ {
		if err := c.loginOnce(ctx); err != nil {
			lastErr = err
			c.log.Error("login attempt failed", err, fields.Add(watermill.LogFields{
				"attempt": attempt,
				"of":      c.cfg.LoginRetries,
			}))
			if attempt < c.cfg.LoginRetries {
				time.Sleep(c.cfg.LoginRetryDelay)
			}
			continue
		}

		c.log.Info("new login session established", fields)
		if c.events != nil {
			if err := c.events.PublishSessionEstablished(ctx, c.wallet.Address(), c.uid); err != nil {
				c.log.Error("failed to publish session event", err, fields)
			}
		}
		return nil
	}

	return fmt.Errorf("login failed after %d attempts: %w", c.cfg.LoginRetries, lastErr)
}

// loginOnce runs one complete pass of the protocol.
func (c *SessionClient) loginOnce(ctx context.Context) error {
	address := c.wallet.Address()
	fields := watermill.LogFields{"wallet": c.wallet.ShortAddress()}

	c.log.Debug("requesting authentication payload", fields)
	var challengeResp struct {
		Payload *core.Challenge `json:"payload"`
	}
	err := c.http.PostJSON(ctx, c.cfg.AuthPayloadURL, map[string]any{
		"address": address,
		"chainId": config.ChainID,
	}, &challengeResp)
	if err != nil {
		return fmt.Errorf("request challenge: %w", err)
	}
	if challengeResp.Payload == nil {
		return core.ErrChallengeMissing
	}

	c.log.Debug("signing challenge message", fields)
	signature, err := c.wallet.SignText(challengeResp.Payload.SignText())
	if err != nil {
		return err
	}

	var loginResp struct {
		CustomToken string `json:"customToken"`
	}
	err = c.http.PostJSON(ctx, c.cfg.AuthLoginURL, map[string]any{
		"payload": map[string]any{
			"Payload":   challengeResp.Payload,
			"Signature": signature,
		},
	}, &loginResp)
	if err != nil {
		return fmt.Errorf("exchange signature: %w", err)
	}
	if loginResp.CustomToken == "" {
		return core.ErrTokenMissing
	}

	c.log.Debug("exchanging custom token with identity provider", fields)
	var identityResp struct {
		IDToken string `json:"idToken"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	err = c.http.PostJSON(ctx, c.cfg.IdentityURL, map[string]any{
		"token":             loginResp.CustomToken,
		"returnSecureToken": true,
	}, &identityResp)
	if err != nil {
		return fmt.Errorf("identity exchange: %w", err)
	}
	if identityResp.Error != nil {
		return fmt.Errorf("%w: %s", core.ErrIdentityProvider, identityResp.Error.Message)
	}
	if identityResp.IDToken == "" {
		return core.ErrIDTokenMissing
	}

	uid, err := idtoken.UserID(identityResp.IDToken)
	if err != nil {
		return err
	}

	c.log.Debug("creating session", fields)
	resp, err := c.http.Do(ctx, c.cfg.SessionLoginURL, map[string]any{"token": identityResp.IDToken})
	if err != nil {
		return fmt.Errorf("session login: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("session login: unexpected status %d", resp.StatusCode)
	}

	cookie := sessionCookie(resp.Header.Values("Set-Cookie"))
	if cookie == "" {
		return core.ErrSessionCookieMissing
	}

	c.http.SetHeader("Cookie", cookie)
	c.uid = uid

	record := &core.SessionRecord{
		Cookies: map[string]string{"session": strings.TrimPrefix(cookie, "session=")},
		Headers: c.http.Headers(),
		UID:     uid,
	}
	if err := c.store.Save(ctx, address, record); err != nil {
		return err
	}
	return nil
}

// probe checks the persisted session with a lightweight authenticated call.
func (c *SessionClient) probe(ctx context.Context) bool {
	resp, err := c.http.Send(ctx, graphql.AccountResourcesQuery, nil)
	if err != nil || !resp.HasData() {
		c.log.Info("persisted session is invalid or has expired", watermill.LogFields{
			"wallet": c.wallet.ShortAddress(),
		})
		return false
	}
	return true
}

// Send issues an authenticated GraphQL call. Transport failures are logged
// and returned; callers treat them as "could not complete this call" and
// stop the current operation rather than retrying.
func (c *SessionClient) Send(ctx context.Context, query string, variables map[string]any) (*graphql.Response, error) {
	resp, err := c.http.Send(ctx, query, variables)
	if err != nil {
		c.log.Error("graphql request failed", err, watermill.LogFields{
			"wallet": c.wallet.ShortAddress(),
		})
		return nil, err
	}
	return resp, nil
}

// sessionCookie locates the session= attribute across Set-Cookie headers.
func sessionCookie(headers []string) string {
	for _, header := range headers {
		for _, part := range strings.Split(header, ";") {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "session=") {
				return part
			}
		}
	}
	return ""
}
