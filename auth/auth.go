package auth

import (
	"crypto/sha256"
	"net/http"

	"daymark/config"

	"github.com/gorilla/sessions"
)

var Store *sessions.CookieStore

const SessionName = "daymark-session"

func InitStore() {
	// Derive two 32-byte keys from the session key to ensure secure encryption
	// Auth key for signing (HMAC)
	authKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "auth"))
	// Encryption key for content encryption (AES)
	encKey := sha256.Sum256([]byte(config.AppConfig.SessionKey + "encryption"))

	Store = sessions.NewCookieStore(authKey[:], encKey[:])

	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 24 hours
		HttpOnly: true,
		Secure:   config.AppConfig.ListenPort != 8080, // Default to true unless dev port
		SameSite: http.SameSiteLaxMode,
	}
}

// GetUserID returns the authenticated user's ID, or 0 when the request
// carries no valid session. Only the ID lives in the cookie; the profile is
// re-fetched from storage on every request that needs it.
func GetUserID(r *http.Request) int {
	session, _ := Store.Get(r, SessionName)
	if id, ok := session.Values["userID"].(int); ok {
		return id
	}
	return 0
}

func SetSession(w http.ResponseWriter, r *http.Request, userID int) error {
	session, _ := Store.Get(r, SessionName)
	session.Values["userID"] = userID
	return session.Save(r, w)
}

func ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := Store.Get(r, SessionName)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
