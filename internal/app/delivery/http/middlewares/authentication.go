package middlewares

import (
	"context"
	"errors"
	"net/http"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"
)

// Authenticate requires a valid access token and stores the resolved actor in
// the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := m.actorFromRequest(r)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate resolves the actor when a credential is present but
// lets anonymous requests through. Consent endpoints accept both.
func (m *Middlewares) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if utils.ExtractBearerToken(r) == "" {
			next.ServeHTTP(w, r)
			return
		}
		actor, err := m.actorFromRequest(r)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}
		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middlewares) actorFromRequest(r *http.Request) (contracts.Actor, error) {
	token := utils.ExtractBearerToken(r)
	if token == "" {
		return contracts.Actor{}, exceptions.ErrTokenMissing(errors.New("authorization header absent"))
	}
	claims, err := utils.ParseToken(token, m.InternalConfig.JWT.Secret)
	if err != nil {
		return contracts.Actor{}, err
	}
	if claims.TokenType != utils.TokenTypeAccess {
		return contracts.Actor{}, exceptions.ErrTokenInvalidOrExpired(errors.New("refresh credential used as access token"))
	}
	return contracts.Actor{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  models.Role(claims.Role),
	}, nil
}

// ActorFromContext returns the authenticated actor, or false when the request
// came through without credentials.
func ActorFromContext(ctx context.Context) (contracts.Actor, bool) {
	actor, ok := ctx.Value(constvars.CONTEXT_SESSION_DATA_KEY).(contracts.Actor)
	return actor, ok
}
