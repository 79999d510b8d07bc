package authapi

import (
	"encoding/json"
	"fmt"
	"time"
)

// ============================================================================
// Providers
// ============================================================================

// Provider identifies a supported third-party identity provider.
type Provider string

const (
	ProviderApple     Provider = "apple"
	ProviderAzure     Provider = "azure"
	ProviderBitbucket Provider = "bitbucket"
	ProviderDiscord   Provider = "discord"
	ProviderFacebook  Provider = "facebook"
	ProviderGitHub    Provider = "github"
	ProviderGitLab    Provider = "gitlab"
	ProviderGoogle    Provider = "google"
	ProviderKeycloak  Provider = "keycloak"
	ProviderLinkedIn  Provider = "linkedin"
	ProviderNotion    Provider = "notion"
	ProviderSlack     Provider = "slack"
	ProviderSpotify   Provider = "spotify"
	ProviderTwitch    Provider = "twitch"
	ProviderTwitter   Provider = "twitter"
	ProviderWorkOS    Provider = "workos"
)

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderApple, ProviderAzure, ProviderBitbucket, ProviderDiscord,
		ProviderFacebook, ProviderGitHub, ProviderGitLab, ProviderGoogle,
		ProviderKeycloak, ProviderLinkedIn, ProviderNotion, ProviderSlack,
		ProviderSpotify, ProviderTwitch, ProviderTwitter, ProviderWorkOS:
		return true
	}
	return false
}

// ============================================================================
// Users and Sessions
// ============================================================================

// User is the service's user representation. This layer treats it as a
// pass-through shape; the metadata maps are interpreted by the service,
// never by the client.
type User struct {
	ID                 string         `json:"id"`
	Aud                string         `json:"aud,omitempty"`
	Role               string         `json:"role,omitempty"`
	Email              string         `json:"email,omitempty"`
	Phone              string         `json:"phone,omitempty"`
	InvitedAt          *time.Time     `json:"invited_at,omitempty"`
	ConfirmedAt        *time.Time     `json:"confirmed_at,omitempty"`
	ConfirmationSentAt *time.Time     `json:"confirmation_sent_at,omitempty"`
	RecoverySentAt     *time.Time     `json:"recovery_sent_at,omitempty"`
	LastSignInAt       *time.Time     `json:"last_sign_in_at,omitempty"`
	AppMetadata        map[string]any `json:"app_metadata,omitempty"`
	UserMetadata       map[string]any `json:"user_metadata,omitempty"`
	CreatedAt          *time.Time     `json:"created_at,omitempty"`
	UpdatedAt          *time.Time     `json:"updated_at,omitempty"`
}

// Session is the token bundle issued by the token endpoint.
//
// ExpiresAt is not part of the wire response: it is derived client-side
// from ExpiresIn at the time the response is normalized, and is nil
// whenever the service omits expires_in.
type Session struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	TokenType    string     `json:"token_type,omitempty"`
	ExpiresIn    *int       `json:"expires_in,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	User         *User      `json:"user,omitempty"`
}

// deriveExpiry computes ExpiresAt from ExpiresIn relative to now.
// Presence of expires_in, not its value, triggers the derivation: an
// explicit zero yields an already-expired session rather than none.
func (s *Session) deriveExpiry(now time.Time) {
	if s.ExpiresIn == nil {
		return
	}
	at := now.Add(time.Duration(*s.ExpiresIn) * time.Second)
	s.ExpiresAt = &at
}

// AdminUserAttributes is the open input envelope accepted by the admin
// create/update operations (email, password, metadata, ...). Keys are
// interpreted by the service, not by this client.
type AdminUserAttributes map[string]any

// OIDCCredentials is the federated credential bundle exchanged for a
// session via the id_token grant.
type OIDCCredentials struct {
	IDToken  string   `json:"id_token"`
	Nonce    string   `json:"nonce,omitempty"`
	ClientID string   `json:"client_id,omitempty"`
	Issuer   string   `json:"issuer,omitempty"`
	Provider Provider `json:"provider,omitempty"`
}

// userList is the envelope the admin list endpoint responds with.
type userList struct {
	Users []User `json:"users"`
}

// ============================================================================
// Action Links
// ============================================================================

// LinkType discriminates the kind of email action link to generate.
type LinkType string

const (
	LinkTypeSignup    LinkType = "signup"
	LinkTypeMagicLink LinkType = "magiclink"
	LinkTypeRecovery  LinkType = "recovery"
	LinkTypeInvite    LinkType = "invite"
)

// GenerateLinkParams is the request to mint an email action link.
type GenerateLinkParams struct {
	Type       LinkType       `json:"type"`
	Email      string         `json:"email"`
	Password   string         `json:"password,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
	RedirectTo string         `json:"redirect_to,omitempty"`
}

// GenerateLinkResponse holds the raw payload returned by the
// generate-link endpoint. Depending on the link type the service answers
// with either a user or a session shape, so the payload stays opaque and
// is decoded on demand.
type GenerateLinkResponse struct {
	raw json.RawMessage
}

// UnmarshalJSON captures the payload without interpreting it.
func (r *GenerateLinkResponse) UnmarshalJSON(data []byte) error {
	r.raw = append(r.raw[:0], data...)
	return nil
}

// Raw returns the undecoded payload.
func (r *GenerateLinkResponse) Raw() json.RawMessage {
	return r.raw
}

// User decodes the payload as a user shape.
func (r *GenerateLinkResponse) User() (*User, error) {
	var user User
	if err := json.Unmarshal(r.raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode link payload as user: %w", err)
	}
	return &user, nil
}

// Session decodes the payload as a session shape.
func (r *GenerateLinkResponse) Session() (*Session, error) {
	var session Session
	if err := json.Unmarshal(r.raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode link payload as session: %w", err)
	}
	return &session, nil
}

// ============================================================================
// Service Introspection
// ============================================================================

// HealthStatus is the response of the service health endpoint.
type HealthStatus struct {
	Version     string `json:"version,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Settings is the service's public configuration: which external
// providers are enabled plus sign-up related flags. Passed through
// untouched.
type Settings struct {
	External      map[string]bool `json:"external,omitempty"`
	DisableSignup bool            `json:"disable_signup"`
	Autoconfirm   bool            `json:"autoconfirm"`
}
