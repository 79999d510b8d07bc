package authapi

import (
	"context"
	"net/http"
	"net/url"
)

// Privileged user administration over the remote users resource. These
// operations authenticate with the service-level credential configured
// on the client (WithServiceKey), not with a per-call user token.

// CreateUser provisions a user directly, bypassing the sign-up flows.
func (c *Client) CreateUser(ctx context.Context, attrs AdminUserAttributes) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/admin/users", attrs, "")
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ListUsers returns every user known to the service, unwrapped from the
// {users: [...]} envelope the endpoint responds with.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/users", nil, "")
	if err != nil {
		return nil, err
	}

	var envelope userList
	if err := decodeJSON(resp, &envelope); err != nil {
		return nil, err
	}

	return envelope.Users, nil
}

// GetUserByID fetches a single user.
func (c *Client) GetUserByID(ctx context.Context, id string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/admin/users/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUserByID applies the given attributes to a user and returns the
// updated representation.
func (c *Client) UpdateUserByID(ctx context.Context, id string, attrs AdminUserAttributes) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(id), attrs, "")
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser removes a user and returns the deleted representation, per
// the service contract.
func (c *Client) DeleteUser(ctx context.Context, id string) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
