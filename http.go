package realworld

import (
	"strings"

	"github.com/goliatone/go-router"
)

// ProtectedRoute returns a middleware that guards a route with bearer auth.
// It extracts the token per the configured lookup, validates it, and
// re-resolves the user so revoked or deactivated accounts drop out even
// while their tokens are still fresh.
func ProtectedRoute(auther Authenticator, cfg Config, logger Logger) router.MiddlewareFunc {
	if logger == nil {
		logger = defLogger{}
	}

	extractors := tokenExtractors(cfg.GetTokenLookup(), cfg.GetAuthScheme())
	contextKey := cfg.GetContextKey()

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			raw := ""
			for _, extractor := range extractors {
				if token, err := extractor(c); err == nil && token != "" {
					raw = token
					break
				}
			}

			if raw == "" {
				return RenderError(c, logger, ErrTokenMissing)
			}

			session, err := auther.SessionFromToken(raw)
			if err != nil {
				return RenderError(c, logger, err)
			}

			if session.GetUserID() == "" {
				logger.Warn("ProtectedRoute token carries no subject")
				return RenderError(c, logger, ErrCredentialsInvalid)
			}

			identity, err := auther.IdentityFromSession(c.Context(), session)
			if err != nil {
				logger.Warn("ProtectedRoute could not resolve identity", "user", session.GetUserID())
				return RenderError(c, logger, ErrCredentialsInvalid)
			}

			c.Locals(contextKey, session)
			c.SetContext(WithUserContext(c.Context(), identity))

			return next(c)
		}
	}
}

// GetRouterSession returns the session the auth middleware stored on the request.
func GetRouterSession(c router.Context, key string) (Session, error) {
	raw := c.Locals(key)
	if raw == nil {
		return nil, ErrTokenMissing
	}

	session, ok := raw.(Session)
	if !ok {
		return nil, ErrUnableToDecodeSession
	}

	return session, nil
}

// TokenExtractor pulls a raw bearer token out of a request.
type TokenExtractor func(c router.Context) (string, error)

// tokenExtractors builds extractors from a lookup spec like
// "header:Authorization,query:token".
func tokenExtractors(tokenLookup, authScheme string) []TokenExtractor {
	if tokenLookup == "" {
		tokenLookup = "header:" + router.HeaderAuthorization
	}
	if authScheme == "" {
		authScheme = "Bearer"
	}

	extractors := []TokenExtractor{}
	for _, rootPart := range strings.Split(tokenLookup, ",") {
		parts := strings.Split(strings.TrimSpace(rootPart), ":")
		if len(parts) != 2 {
			continue
		}

		for i, el := range parts {
			parts[i] = strings.TrimSpace(el)
		}

		switch parts[0] {
		case "header":
			extractors = append(extractors, tokenFromHeader(parts[1], authScheme))
		case "query":
			extractors = append(extractors, tokenFromQuery(parts[1]))
		}
	}

	return extractors
}

// tokenFromHeader returns a function that extracts token from the request header.
func tokenFromHeader(header string, authScheme string) TokenExtractor {
	return func(c router.Context) (string, error) {
		a := c.GetString(header, "")
		authScheme = strings.TrimSpace(authScheme)
		l := len(authScheme)
		if l == 0 {
			return "", ErrTokenMissing
		}
		if len(a) > l+1 && strings.EqualFold(a[:l], authScheme) {
			return strings.TrimSpace(a[l:]), nil
		}
		return "", ErrTokenMissing
	}
}

// tokenFromQuery returns a function that extracts token from the query string.
func tokenFromQuery(param string) TokenExtractor {
	return func(c router.Context) (string, error) {
		token := c.Query(param, "")
		if token == "" {
			return "", ErrTokenMissing
		}
		return token, nil
	}
}
