package middleware

import (
	"context"
	"strings"

	"guildbook/internal/auth"
	"guildbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Fiber locals set by Authenticate.
const (
	LocalIdentity = "identity"
	LocalRole     = "role"
)

// TokenCookie is the cookie the credential is resolved from. It takes
// precedence over the Authorization header when both are present.
const TokenCookie = "token"

// Operation names every gated endpoint. The capability table below is the
// single source of truth for which roles may perform which operation.
type Operation string

const (
	OpGuideList     Operation = "guides.list"
	OpGuideRead     Operation = "guides.read"
	OpGuideCreate   Operation = "guides.create"
	OpGuideUpdate   Operation = "guides.update"
	OpVoteToggle    Operation = "votes.toggle"
	OpCommentCreate Operation = "comments.create"
)

// anyRole marks an operation open to every authenticated role.
const anyRole = "*"

var capabilities = map[Operation][]string{
	OpGuideList:     {anyRole},
	OpGuideRead:     {anyRole},
	OpGuideCreate:   {anyRole},
	OpGuideUpdate:   {auth.RoleOfficer, auth.RoleGM},
	OpVoteToggle:    {anyRole},
	OpCommentCreate: {anyRole},
}

// TokenFromRequest resolves the bearer credential from the token cookie or,
// failing that, from an "Authorization: Bearer" header.
func TokenFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(TokenCookie); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Authenticate enforces a valid credential on protected routes. On success the
// verified identity and role are stored in Fiber locals.
func Authenticate(verifier auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Missing credential"))
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		c.Locals(LocalIdentity, claims.Identity)
		c.Locals(LocalRole, claims.Role)

		// ContextMiddleware ran before any route handler, so the identity
		// has to enter the request context here for the logger to see it.
		c.SetUserContext(context.WithValue(c.UserContext(), IdentityKey, claims.Identity))
		return c.Next()
	}
}

// RequireCapability enforces the capability table for the given operation.
// It must run after Authenticate.
func RequireCapability(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Missing credential"))
		}

		for _, allowed := range capabilities[op] {
			if allowed == anyRole || allowed == role {
				return c.Next()
			}
		}

		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Insufficient role for "+string(op)))
	}
}
