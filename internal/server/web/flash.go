package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/Harshinireddy05/DayntTech/internal/common"
)

const flashMaxAge = 60 // seconds

func setFlash(w http.ResponseWriter, r *http.Request, typ, msg string) {
	b, err := json.Marshal(Flash{Type: typ, Message: msg})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash, if any. A malformed cookie
// is dropped silently.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(common.FlashCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     common.FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}
