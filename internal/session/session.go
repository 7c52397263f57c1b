package session

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// CookieName holds the device-scoped anonymous session identifier. The
// session id keys the anonymous view-history log and survives until the
// cookie expires or the browser clears it.
const CookieName = "storefront_session"

// UserIDFromCtx extracts the authenticated user id from the JWT the
// middleware stored in locals. Returns an error when the request carries no
// valid token.
func UserIDFromCtx(c *fiber.Ctx) (int, error) {
	u := c.Locals("user")
	if u == nil {
		return 0, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.ErrUnauthorized
	}
	if raw, ok := claims["user_id"]; ok {
		switch v := raw.(type) {
		case float64:
			return int(v), nil
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case string:
			id, err := strconv.Atoi(v)
			if err != nil {
				return 0, fiber.ErrUnauthorized
			}
			return id, nil
		}
	}
	return 0, fiber.ErrUnauthorized
}

// OptionalUserID returns the user id when the request is authenticated and
// zero otherwise. Recommendation and tracking endpoints serve both kinds of
// visitor.
func OptionalUserID(c *fiber.Ctx) int {
	id, err := UserIDFromCtx(c)
	if err != nil {
		return 0
	}
	return id
}

// ID returns the anonymous session id for this request, minting and setting
// the cookie when the visitor does not have one yet.
func ID(c *fiber.Ctx) string {
	if v := c.Cookies(CookieName); v != "" {
		return v
	}
	v := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    v,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return v
}
