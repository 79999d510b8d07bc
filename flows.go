package authapi

import (
	"context"
	"net/http"
	"net/url"
)

// SignOut revokes the session behind the given access token. The
// response body is intentionally discarded; any 2xx status is success.
func (c *Client) SignOut(ctx context.Context, token string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/logout", nil, token)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil)
}

// InviteOptions customizes an invite.
type InviteOptions struct {
	// RedirectTo is where the invite link lands after acceptance
	RedirectTo string

	// Data is arbitrary metadata stored on the invited user
	Data map[string]any
}

// InviteUserByEmail sends an invite link to the given email address and
// returns the invited user.
func (c *Client) InviteUserByEmail(ctx context.Context, email string, opts *InviteOptions) (*User, error) {
	body := map[string]any{"email": email}
	path := "/invite"

	if opts != nil {
		if len(opts.Data) > 0 {
			body["data"] = opts.Data
		}
		if opts.RedirectTo != "" {
			path += "?redirect_to=" + url.QueryEscape(opts.RedirectTo)
		}
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body, "")
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// RecoverOptions customizes a password-recovery request.
type RecoverOptions struct {
	// RedirectTo is where the recovery link lands
	RedirectTo string

	// CaptchaToken is an anti-abuse verification token, forwarded to the
	// service nested under its security metadata key
	CaptchaToken string
}

// ResetPasswordForEmail sends a password-recovery link to the given
// email address.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email string, opts *RecoverOptions) error {
	body := map[string]any{"email": email}
	path := "/recover"

	if opts != nil {
		if opts.CaptchaToken != "" {
			body["gotrue_meta_security"] = map[string]string{
				"captcha_token": opts.CaptchaToken,
			}
		}
		if opts.RedirectTo != "" {
			path += "?redirect_to=" + url.QueryEscape(opts.RedirectTo)
		}
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body, "")
	if err != nil {
		return err
	}

	return decodeJSON(resp, nil)
}

// GenerateLink asks the service to mint an email action link of the
// given type. The response shape depends on the link type, so the
// payload is returned undecoded; use User or Session on the result.
func (c *Client) GenerateLink(ctx context.Context, params GenerateLinkParams) (*GenerateLinkResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/generate_link", params, "")
	if err != nil {
		return nil, err
	}

	var link GenerateLinkResponse
	if err := decodeJSON(resp, &link); err != nil {
		return nil, err
	}

	return &link, nil
}
