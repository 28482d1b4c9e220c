package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "admin_session"

const sessionCookieName = "tigerlee_admin"

// SessionTTL bounds how long an admin login lasts.
const SessionTTL = 12 * time.Hour

// Session is the signed state carried by the admin cookie.
type Session struct {
	Username string    `json:"u"`
	IssuedAt time.Time `json:"t"`
}

// SessionCodec signs and encrypts admin sessions into a cookie.
// There is no server-side session table; logging out clears the cookie.
type SessionCodec struct {
	sc     *securecookie.SecureCookie
	secure bool
	now    func() time.Time
}

// NewSessionCodec creates a codec from 32-byte hash and block keys.
// PRE: len(hashKey) == 32, len(blockKey) in {16, 24, 32}
func NewSessionCodec(hashKey, blockKey []byte, secure bool) *SessionCodec {
	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(SessionTTL.Seconds()))
	sc.SetSerializer(securecookie.JSONEncoder{})
	return &SessionCodec{sc: sc, secure: secure, now: time.Now}
}

// Issue writes a session cookie for username.
// POST: subsequent requests carrying the cookie are LoggedIn
func (c *SessionCodec) Issue(w http.ResponseWriter, username string) error {
	encoded, err := c.sc.Encode(sessionCookieName, Session{Username: username, IssuedAt: c.now()})
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(SessionTTL.Seconds()),
	})
	return nil
}

// Clear removes the session cookie.
func (c *SessionCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}

// Read decodes the session cookie, rejecting tampered or expired values.
func (c *SessionCodec) Read(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	var s Session
	if err := c.sc.Decode(sessionCookieName, cookie.Value, &s); err != nil {
		return Session{}, false
	}
	if s.Username == "" || c.now().Sub(s.IssuedAt) > SessionTTL {
		return Session{}, false
	}
	return s, true
}

// Auth returns middleware that puts a valid admin session into the context.
// It does NOT block anonymous requests; use RequireAdmin for that.
func Auth(codec *SessionCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, ok := codec.Read(r); ok {
				r = r.WithContext(ContextWithSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin blocks requests without an admin session. API callers get
// 401; page requests are sent to the admin login page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"admin login required"}`))
				return
			}
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSessionFromContext extracts the admin session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(Session)
	return s, ok
}

// IsAdmin reports whether the request carries a valid admin session.
func IsAdmin(ctx context.Context) bool {
	_, ok := GetSessionFromContext(ctx)
	return ok
}

// ContextWithSession returns a context with the given session set.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}
