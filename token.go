package authapi

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Grant types accepted by the token endpoint. The discriminator travels
// in the query string, not the body.
const (
	grantTypeIDToken      = "id_token"
	grantTypeRefreshToken = "refresh_token"
)

// SignInWithIDToken exchanges a federated OIDC credential bundle for a
// session via the id_token grant.
func (c *Client) SignInWithIDToken(ctx context.Context, creds OIDCCredentials) (*Session, error) {
	return c.requestToken(ctx, grantTypeIDToken, creds)
}

// RefreshSession exchanges a refresh token for a fresh session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return c.requestToken(ctx, grantTypeRefreshToken, body)
}

func (c *Client) requestToken(ctx context.Context, grantType string, body any) (*Session, error) {
	path := "/token?grant_type=" + url.QueryEscape(grantType)

	resp, err := c.doRequest(ctx, http.MethodPost, path, body, "")
	if err != nil {
		return nil, err
	}

	var session Session
	if err := decodeJSON(resp, &session); err != nil {
		return nil, err
	}

	session.deriveExpiry(time.Now())
	return &session, nil
}
