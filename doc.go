/*
Package authapi provides a client for a remote identity/authentication
service's HTTP API: federated OIDC sign-in, session refresh, account flow
triggers (invites, password recovery, action links) and privileged user
administration.

# Client

All operations hang off a single Client holding immutable configuration:

	client := authapi.New("https://id.example.com/auth/v1",
		authapi.WithServiceKey(serviceKey),
	)

The base URL, default headers and transport handle are fixed at
construction; no operation mutates them, so one Client can be shared by
any number of goroutines.

# Sign-in and Refresh

Federated sign-in exchanges an OIDC id-token for a session; refresh
exchanges a refresh token. Both return a Session whose ExpiresAt is
derived client-side from the expires_in the service reported:

	session, err := client.SignInWithIDToken(ctx, authapi.OIDCCredentials{
		IDToken:  idToken,
		Nonce:    nonce,
		Provider: authapi.ProviderGoogle,
	})

	session, err = client.RefreshSession(ctx, session.RefreshToken)

# Admin Operations

The privileged operations (CreateUser, ListUsers, GetUserByID,
UpdateUserByID, DeleteUser, GenerateLink) require the client to be
configured with a service-level key via WithServiceKey; the key travels
in the default headers on every request.

# Error Handling

Operations return exactly one of payload or error. A structured
rejection from the service (status plus message) is the concrete *Error
type, matchable with IsError or errors.As:

	user, err := client.CreateUser(ctx, attrs)
	if apiErr, ok := authapi.IsError(err); ok {
		// the service rejected the request (e.g. 422 "Invalid email")
		fmt.Println(apiErr.Status, apiErr.Message)
	} else if err != nil {
		// infrastructure failure: network fault, malformed response, ...
		return err
	}

Unanticipated failures are never coerced into *Error, so the two cases
stay distinguishable. No operation retries; each call is a single
attempt reported exactly once.
*/
package authapi
