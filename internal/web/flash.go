package web

import (
	"net/http"
	"net/url"

	"github.com/evcraddock/nucamp/internal/view"
)

// Flash message cookie names
const (
	flashSuccessCookie = "flash_success"
	flashErrorCookie   = "flash_error"
)

// setFlashSuccess sets a success flash message cookie.
func setFlashSuccess(w http.ResponseWriter, r *http.Request, message string) {
	setFlash(w, r, flashSuccessCookie, message)
}

// setFlashError sets an error flash message cookie.
func setFlashError(w http.ResponseWriter, r *http.Request, message string) {
	setFlash(w, r, flashErrorCookie, message)
}

func setFlash(w http.ResponseWriter, r *http.Request, name, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   60, // survives the redirect
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// getFlashMessages reads and clears flash message cookies.
// Call this once per request, before writing the body.
func getFlashMessages(w http.ResponseWriter, r *http.Request) view.Flash {
	var messages view.Flash
	messages.Success = popFlash(w, r, flashSuccessCookie)
	messages.Error = popFlash(w, r, flashErrorCookie)
	return messages
}

func popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return decoded
}
