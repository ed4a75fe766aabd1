package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/hpmalinova/Household-Manager/model"
)

func (a *App) register(w http.ResponseWriter, r *http.Request) {
	// r.Body: {"username":"peter", "password": "12345678"}
	credentials := &model.UserRegister{}
	if !a.decodeAndValidate(w, r, credentials) {
		return
	}

	// Hash the password with bcrypt
	pass, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Password hashing failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Password Encryption failed")
		return
	}

	user := &model.User{Username: credentials.Username, PasswordHash: string(pass)}
	if err := a.Store.Users().Create(r.Context(), user); err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	slog.Info("User registered", "user_id", user.ID)
	respondWithJSON(w, http.StatusCreated, user)
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	credentials := &model.UserLogin{}
	if !a.decodeAndValidate(w, r, credentials) {
		return
	}

	user, err := a.Store.Users().FindByUsername(r.Context(), credentials.Username)
	if errors.Is(err, model.ErrNotFound) {
		respondWithError(w, http.StatusUnauthorized, "Invalid login credentials. Please try again")
		return
	}
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password))
	if err != nil { //Password does not match!
		respondWithError(w, http.StatusUnauthorized, "Invalid login credentials. Please try again")
		return
	}

	token, expiresAt, err := a.issueToken(user)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// getUser returns the caller or someone they share a group with. Anyone
// else is reported as not found.
func (a *App) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if id != userID {
		shared, err := a.Store.Users().SharesGroup(r.Context(), userID, id)
		if err != nil {
			respondWithDomainError(w, r, err)
			return
		}
		if !shared {
			respondWithDomainError(w, r, model.NotFoundf("user not found"))
			return
		}
	}

	user, err := a.Store.Users().FindByID(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
