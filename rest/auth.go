package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/hpmalinova/Household-Manager/model"
)

type contextKey string

const userKey contextKey = "user"

// JwtVerify accepts a token from the Authorization header or the "token"
// cookie and stores its claims in the request context.
func (a *App) JwtVerify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie("token"); err == nil {
				token = c.Value
			}
		}
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing auth token")
			return
		}

		claims := &model.UserToken{}
		_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return a.Secret, nil
		})
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid auth token")
			return
		}
		if _, err := strconv.ParseUint(claims.UserID, 10, 64); err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid auth token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authenticatedUserID returns the id of the caller. JwtVerify guarantees it is set
// on every /api route.
func authenticatedUserID(r *http.Request) (uint, error) {
	claims, ok := r.Context().Value(userKey).(*model.UserToken)
	if !ok {
		return 0, &model.Error{Kind: model.KindUnauthenticated, Message: "not logged in"}
	}
	id, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		return 0, &model.Error{Kind: model.KindUnauthenticated, Message: "not logged in", Err: err}
	}
	return uint(id), nil
}

func (a *App) issueToken(user *model.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(a.TokenTTL)
	claims := &model.UserToken{
		UserID:   strconv.FormatUint(uint64(user.ID), 10),
		Username: user.Username,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
