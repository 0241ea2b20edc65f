// middleware/session.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const sessionLocalsKey = "session"

// RequireSession loads the caller's session and attaches it to the request
// context. Handlers read it back with Session.
func (g *Gate) RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := g.sessions.Get(c)
		if err != nil {
			g.logger.Error("failed to load session", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).SendString("session unavailable")
		}
		c.Locals(sessionLocalsKey, sess)
		return c.Next()
	}
}

// Session returns the session attached by RequireSession, or nil.
func (g *Gate) Session(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocalsKey).(*session.Session)
	return sess
}

// RequireAuthenticated redirects unauthenticated sessions to loginPath. It
// must run after RequireSession.
func (g *Gate) RequireAuthenticated(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !g.IsAuthenticated(g.Session(c)) {
			g.logger.Debug("unauthenticated session redirected",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()))
			return c.Redirect(loginPath)
		}
		return c.Next()
	}
}
