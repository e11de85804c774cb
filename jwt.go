package main

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// authClaims is what a parsed token yields: the user's id plus the
// username the dashboard keys crops and stations by.
type authClaims struct {
	UserID   primitive.ObjectID
	Username string
}

// signJWT creates an HS256 token with 24h expiration.
func signJWT(secret string, userID primitive.ObjectID, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID.Hex(),
		"username": username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
		"iss":      "agroclima",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseJWT validates token and returns its claims.
func parseJWT(secret, tokenStr string) (authClaims, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return authClaims{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return authClaims{}, errors.New("no claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return authClaims{}, errors.New("no subject")
	}
	uid, err := primitive.ObjectIDFromHex(sub)
	if err != nil {
		return authClaims{}, err
	}
	username, _ := claims["username"].(string)
	return authClaims{UserID: uid, Username: username}, nil
}
