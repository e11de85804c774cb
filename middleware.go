package main

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey string

const authKey ctxKey = "auth"

// authMiddleware extracts and validates Bearer token and injects the
// authenticated claims into context.
func (a *App) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(authz, "Bearer ")
		claims, err := parseJWT(a.cfg.JWTSecret, raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), authKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mustAuth returns the claims from context, or zero claims if missing.
func mustAuth(r *http.Request) authClaims {
	val := r.Context().Value(authKey)
	if val == nil {
		return authClaims{}
	}
	return val.(authClaims)
}

// mustUserID returns the userID from context or NilObjectID if missing.
func mustUserID(r *http.Request) primitive.ObjectID {
	return mustAuth(r).UserID
}
