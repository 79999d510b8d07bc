package authapi

import (
	"fmt"
	"net/url"
	"strings"
)

// AuthorizeOptions customizes the provider-authorize URL.
type AuthorizeOptions struct {
	// RedirectTo is the URL the provider sends the user back to after consent
	RedirectTo string

	// Scopes is the space-delimited scope list forwarded to the provider
	Scopes string

	// QueryParams are extra parameters appended to the authorize URL.
	// Each pair is percent-encoded independently; the order of pairs
	// within this fragment is unspecified.
	QueryParams map[string]string
}

// AuthorizeURL computes the URL used to start a third-party sign-in flow
// with the given provider. No request is issued; the caller navigates to
// the returned URL.
//
// Parameter order is fixed: provider, then redirect_to, then scopes,
// then the extra query params as a single trailing fragment.
func (c *Client) AuthorizeURL(provider Provider, opts *AuthorizeOptions) (string, error) {
	if !provider.Valid() {
		return "", fmt.Errorf("unsupported provider %q", provider)
	}

	parts := []string{"provider=" + url.QueryEscape(string(provider))}

	if opts != nil {
		if opts.RedirectTo != "" {
			parts = append(parts, "redirect_to="+url.QueryEscape(opts.RedirectTo))
		}
		if opts.Scopes != "" {
			parts = append(parts, "scopes="+url.QueryEscape(opts.Scopes))
		}
		if len(opts.QueryParams) > 0 {
			extra := url.Values{}
			for key, value := range opts.QueryParams {
				extra.Set(key, value)
			}
			parts = append(parts, extra.Encode())
		}
	}

	return c.endpointURL("/authorize?" + strings.Join(parts, "&")), nil
}
