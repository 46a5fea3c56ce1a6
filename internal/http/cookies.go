package http

import (
	"net/http"
	"time"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
)

func (h *Handler) setSessionCookie(w http.ResponseWriter, name, token string, maxAge time.Duration) {
	sameSite := http.SameSiteLaxMode
	if h.production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter, name string) {
	sameSite := http.SameSiteLaxMode
	if h.production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	})
}
