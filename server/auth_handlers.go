package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-auth-client/authapi"
	"github.com/jrsteele09/go-auth-client/users"
)

// The wire contract matches the original blog backend: failures are reported
// through error/message fields in the body, which clients inspect regardless
// of the HTTP status code.

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(errName, message string) map[string]string {
	return map[string]string{
		"error":   errName,
		"message": message,
	}
}

// SignupHandler creates an account and answers with a fresh token pair.
func (s *Server) SignupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authapi.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Bad Request", "Malformed request body"))
			return
		}

		if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
			writeJSON(w, http.StatusBadRequest, errorBody("Bad Request", "All fields are required"))
			return
		}
		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Bad Request", err.Error()))
			return
		}
		if _, err := s.repos.Users.GetByEmail(req.Email); err == nil {
			writeJSON(w, http.StatusConflict, errorBody("Conflict", "Email is already registered"))
			return
		}

		passwordHash, err := users.HashPassword(req.Password)
		if err != nil {
			s.log.Err(err).Msg("password hashing failed")
			writeJSON(w, http.StatusInternalServerError, errorBody("Internal Server Error", "Could not create account"))
			return
		}

		now := time.Now().UTC()
		user := &users.User{
			Email:        req.Email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Role:         users.RoleUser,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repos.Users.Upsert(user); err != nil {
			s.log.Err(err).Msg("user upsert failed")
			writeJSON(w, http.StatusInternalServerError, errorBody("Internal Server Error", "Could not create account"))
			return
		}

		accessToken, err := s.tokens.CreateAccessToken(user)
		if err != nil {
			s.log.Err(err).Msg("access token creation failed")
			writeJSON(w, http.StatusInternalServerError, errorBody("Internal Server Error", "Could not issue tokens"))
			return
		}

		writeJSON(w, http.StatusCreated, authapi.RegisterResponse{
			AccessToken:  accessToken,
			RefreshToken: s.refreshRepo.Issue(user.ID),
		})
	}
}

// LoginHandler exchanges credentials for a token pair and the user profile.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authapi.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("Bad Request", "Malformed request body"))
			return
		}

		user, err := s.repos.Users.GetByEmail(req.Email)
		if err != nil || !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized", "Invalid email or password"))
			return
		}

		accessToken, err := s.tokens.CreateAccessToken(user)
		if err != nil {
			s.log.Err(err).Msg("access token creation failed")
			writeJSON(w, http.StatusInternalServerError, errorBody("Internal Server Error", "Could not issue tokens"))
			return
		}

		writeJSON(w, http.StatusOK, authapi.LoginResponse{
			AccessToken:  accessToken,
			RefreshToken: s.refreshRepo.Issue(user.ID),
			User:         user,
		})
	}
}

// RefreshHandler mints a new access token from a refresh token. The refresh
// token is not rotated; failures answer with a message field and leave the
// stored token untouched.
func (s *Server) RefreshHandler() http.HandlerFunc {
	type refreshRequest struct {
		Token string `json:"token"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
			return
		}

		userID, err := s.refreshRepo.Lookup(req.Token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid refresh token"})
			return
		}

		user, err := s.repos.Users.GetByID(userID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unknown user"})
			return
		}

		accessToken, err := s.tokens.CreateAccessToken(user)
		if err != nil {
			s.log.Err(err).Msg("access token creation failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Could not issue token"})
			return
		}

		writeJSON(w, http.StatusOK, authapi.RefreshResponse{AccessToken: accessToken})
	}
}
