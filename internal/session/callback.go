package session

import (
	"net/url"
)

// Callback query parameters set by the OAuth provider redirect.
const (
	paramToken   = "token"
	paramUser    = "user"
	paramName    = "name"
	paramPicture = "picture"
	paramError   = "error"
)

// Callback is the one-time signal carried by the OAuth redirect URL:
// either a fresh token with identity hints, or a provider error.
type Callback struct {
	Token   string
	Email   string
	Name    string
	Picture string
	Err     string
}

// ParseCallback extracts OAuth callback parameters from rawURL and returns
// the callback (nil when none are present) together with the URL stripped
// of those parameters. Stripping is idempotent: feeding the cleaned URL
// back in yields no callback and the same URL.
func ParseCallback(rawURL string) (*Callback, string) {
	if rawURL == "" {
		return nil, ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		// Not a URL we can interpret; leave it alone.
		return nil, rawURL
	}

	q := u.Query()
	if q.Get(paramToken) == "" && q.Get(paramError) == "" {
		return nil, rawURL
	}

	cb := &Callback{
		Token:   q.Get(paramToken),
		Email:   q.Get(paramUser),
		Name:    q.Get(paramName),
		Picture: q.Get(paramPicture),
		Err:     q.Get(paramError),
	}

	for _, param := range []string{paramToken, paramUser, paramName, paramPicture, paramError} {
		q.Del(param)
	}
	u.RawQuery = q.Encode()

	return cb, u.String()
}
