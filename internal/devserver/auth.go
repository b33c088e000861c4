package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brisatech/backoffice/pkg/models"
	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenBlock struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
	TokenType   string `json:"tokenType"`
}

type loginResponse struct {
	User  models.User `json:"user"`
	Token tokenBlock  `json:"token"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", "Bad Request")
		return
	}

	if !s.store.CheckPassword(req.Email, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials", "Unauthorized")
		return
	}

	s.store.TouchLastLogin()
	admin := s.store.Admin()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"exp":   time.Now().Add(s.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error signing token", "Internal Server Error")
		return
	}

	writeData(w, http.StatusOK, loginResponse{
		User: admin,
		Token: tokenBlock{
			AccessToken: tokenStr,
			ExpiresIn:   int64(s.tokenDuration.Seconds()),
			TokenType:   "Bearer",
		},
	})
}

func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.store.Admin())
}

type profileUpdateRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
	Avatar   *string `json:"avatar"`
}

func (s *Server) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}

	if req.Password != nil {
		if err := s.store.SetPassword(*req.Password); err != nil {
			writeError(w, http.StatusInternalServerError, "Error updating password", "Internal Server Error")
			return
		}
	}

	updated := s.store.UpdateAdmin(func(u *models.User) {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Avatar != nil {
			u.Avatar = *req.Avatar
		}
	})
	writeData(w, http.StatusOK, updated)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Bad Request")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "New password is required", "Bad Request")
		return
	}

	// A wrong current password is a validation failure, not a credential
	// failure: the caller keeps their session.
	if !s.store.CheckPassword(s.store.Admin().Email, req.CurrentPassword) {
		writeError(w, http.StatusBadRequest, "Current password is incorrect", "Bad Request")
		return
	}

	if err := s.store.SetPassword(req.NewPassword); err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating password", "Internal Server Error")
		return
	}
	writeMessage(w, http.StatusOK, "Password updated")
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless here; the endpoint exists so clients can notify
	// the server before clearing local state.
	writeMessage(w, http.StatusOK, "Logged out")
}
