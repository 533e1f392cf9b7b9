package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode"

	"hazard-watch/internal/core/domain"
)

// V1RegisterRequest is the body request for Register
type V1RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// V1TokenResponse carries a freshly issued token
type V1TokenResponse struct {
	Token string `json:"token"`
}

// RegisterV1 is the handler for register v1
func (h *HandlerV1) RegisterV1(w http.ResponseWriter, r *http.Request) {

	var req V1RegisterRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding register request", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		http.Error(w, "username and password required", http.StatusBadRequest)
		return
	}

	for _, char := range req.Username {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) {
			http.Error(w, "username contains invalid characters", http.StatusBadRequest)
			return
		}
	}

	token, err := h.authService.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		http.Error(w, "username already taken", http.StatusConflict)
	case err != nil:
		h.logger.Error("error registering user", "error", err)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(V1TokenResponse{Token: token}); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
	}

}
