package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/school4u/api/internal/auth"
	httpmiddleware "github.com/school4u/api/internal/http/middleware"
	"github.com/school4u/api/internal/repo"
)

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	Residence string `json:"residence"`
}

// Signup registers an account and starts a session with an access cookie.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "All fields are required", "")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("password hash failed")
		WriteError(w, http.StatusInternalServerError, "An error occurred while creating the user", "")
		return
	}

	user, err := h.users.CreateUser(r.Context(), repo.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		Name:      req.Name,
		Mobile:    req.Mobile,
		Residence: req.Residence,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrUsernameTaken):
			WriteError(w, http.StatusBadRequest, "Username already exists", "")
		case errors.Is(err, repo.ErrEmailTaken):
			WriteError(w, http.StatusBadRequest, "Email already exists", "")
		default:
			log.Error().Err(err).Msg("signup insert failed")
			WriteError(w, http.StatusInternalServerError, "An error occurred while creating the user", err.Error())
		}
		return
	}

	identity := auth.Identity{UserID: user.ID, UserName: user.Username}
	accessToken, err := h.tokens.Issue(identity, h.accessTTL)
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		WriteError(w, http.StatusInternalServerError, "An error occurred while creating the user", "")
		return
	}
	h.setSessionCookie(w, accessCookie, accessToken, h.accessTTL)

	WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and sets both session cookies.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "All fields are required", "")
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Invalid username or password", "")
			return
		}
		log.Error().Err(err).Msg("login lookup failed")
		WriteError(w, http.StatusInternalServerError, "Error during login", "")
		return
	}

	match, err := auth.VerifyPassword(req.Password, user.Password)
	if err != nil || !match {
		WriteError(w, http.StatusNotFound, "Invalid password", "")
		return
	}

	identity := auth.Identity{UserID: user.ID, UserName: user.Username}

	accessToken, err := h.tokens.Issue(identity, h.accessTTL)
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		WriteError(w, http.StatusInternalServerError, "Error during login", "")
		return
	}
	refreshToken, err := h.tokens.Issue(identity, h.refreshTTL)
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		WriteError(w, http.StatusInternalServerError, "Error during login", "")
		return
	}

	h.setSessionCookie(w, accessCookie, accessToken, h.accessTTL)
	h.setSessionCookie(w, refreshCookie, refreshToken, h.refreshTTL)

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged in successfully"})
}

// Logout clears both session cookies.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.clearSessionCookie(w, accessCookie)
	h.clearSessionCookie(w, refreshCookie)

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Logged out successfully",
		"success": true,
	})
}

// Refresh mints a fresh access cookie from a valid refresh cookie. The auth
// middleware also accepts the refresh cookie directly; this endpoint lets
// clients rotate the access token explicitly instead.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookie)
	if err != nil || cookie.Value == "" {
		WriteJSON(w, http.StatusUnauthorized, map[string]string{
			"message": "No token provided",
			"details": "Refresh token cookie missing",
		})
		return
	}

	claims, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		WriteJSON(w, http.StatusForbidden, map[string]string{
			"message": "Invalid token",
			"details": err.Error(),
		})
		return
	}

	identity, err := h.resolver.Resolve(r.Context(), claims)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			WriteJSON(w, http.StatusUnauthorized, map[string]string{
				"message": "User not found",
				"details": "Invalid token - user does not exist",
			})
			return
		}
		WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Authentication database error",
			"details": "Could not verify user identity",
		})
		return
	}

	accessToken, err := h.tokens.Issue(identity, h.accessTTL)
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		WriteError(w, http.StatusInternalServerError, "Error refreshing session", "")
		return
	}
	h.setSessionCookie(w, accessCookie, accessToken, h.accessTTL)

	WriteJSON(w, http.StatusOK, map[string]string{"message": "Session refreshed"})
}

// VerifySession reports the authenticated identity. Reaching this handler
// means the middleware accepted the token.
func (h *Handler) VerifySession(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"userId":   httpmiddleware.GetUserID(r.Context()),
		"username": httpmiddleware.GetUsername(r.Context()),
		"message":  "Session is valid",
	})
}

// ChatVerifyAccess confirms chat posting rights for the authenticated user.
func (h *Handler) ChatVerifyAccess(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"verified": true,
		"userId":   httpmiddleware.GetUserID(r.Context()),
		"username": httpmiddleware.GetUsername(r.Context()),
		"message":  "Access granted to chat",
	})
}
