package auth

import (
	"net/http"
	"time"

	"github.com/acamacho/portfolio-backend/config"
	"github.com/acamacho/portfolio-backend/errs"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the session marker the dashboard and the route guard look for.
const CookieName = "adminSession"

// SessionClaims is what the adminSession token carries. The email and
// isAuthenticated fields mirror the cookie payload the dashboard expects.
type SessionClaims struct {
	Email           string `json:"email"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	jwt.RegisteredClaims
}

// SessionManager mints and verifies the signed adminSession cookie. Unlike a
// bare JSON cookie, a forged value fails signature verification and is treated
// as absent.
type SessionManager struct {
	secret        []byte
	ttl           time.Duration
	secureCookies bool
}

func NewSessionManager(c map[string]string) SessionManager {
	secret := config.GetString(c, "SESSION_SECRET", "dev-insecure-secret-change-me")
	ttl := config.GetDuration(c, "SESSION_TTL", 24*time.Hour)
	production := config.GetString(c, "ENV", "development") == "production"

	return SessionManager{
		secret:        []byte(secret),
		ttl:           ttl,
		secureCookies: production,
	}
}

// Issue signs a fresh session token for the given admin email and sets it as
// the adminSession cookie.
func (m SessionManager) Issue(w http.ResponseWriter, email string) error {
	now := time.Now()
	claims := SessionClaims{
		Email:           email,
		IsAuthenticated: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Read extracts and verifies the session claims from the request cookie.
func (m SessionManager) Read(r *http.Request) (*SessionClaims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, errs.NewMissingSessionError()
	}

	var claims SessionClaims
	token, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.NewInvalidSessionError(err)
	}
	if !claims.IsAuthenticated {
		return nil, errs.NewInvalidSessionError(nil)
	}
	return &claims, nil
}

// IsAuthenticated reports whether the request carries a valid session cookie.
func (m SessionManager) IsAuthenticated(r *http.Request) bool {
	_, err := m.Read(r)
	return err == nil
}

// Clear expires the adminSession cookie.
func (m SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
