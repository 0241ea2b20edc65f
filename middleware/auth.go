// middleware/auth.go
package middleware

import (
	"crypto/subtle"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const authenticatedKey = "authenticated"

// Gate protects the catalog input forms. A session becomes authenticated
// after one successful credential check and stays that way until the
// session store expires it.
type Gate struct {
	username string
	password string
	sessions *session.Store
	logger   *zap.Logger
}

// NewGate builds a gate around the configured login secrets. Sessions live in
// fiber's in-memory store and expire ttl after their last save.
func NewGate(username, password string, ttl time.Duration, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{
		username: username,
		password: password,
		sessions: session.New(session.Config{
			Expiration:     ttl,
			KeyGenerator:   uuid.NewString,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
		logger: logger,
	}
}

// CheckCredentials compares the submitted pair with the configured secrets.
func (g *Gate) CheckCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	return userOK && passOK
}

// MarkAuthenticated flags the session and persists it. The session id is
// regenerated first, and sess must not be used after this call.
func (g *Gate) MarkAuthenticated(sess *session.Session) error {
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(authenticatedKey, true)
	return sess.Save()
}

func (g *Gate) IsAuthenticated(sess *session.Session) bool {
	if sess == nil {
		return false
	}
	ok, _ := sess.Get(authenticatedKey).(bool)
	return ok
}
