package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"hazard-watch/internal/core/domain"
)

// V1LoginRequest is the body request for Login
type V1LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginV1 is the handler for login v1
func (h *HandlerV1) LoginV1(w http.ResponseWriter, r *http.Request) {

	var req V1LoginRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding login request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}

	token, err := h.authService.Authenticate(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	case err != nil:
		h.logger.Error("error authenticating user", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(V1TokenResponse{Token: token}); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
