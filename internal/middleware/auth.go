package middleware

import (
	"net/http"
	"strings"

	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/pkg/credentials"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName carries the session token between browser and API.
const CookieName = "token"

const identityKey = "identity"

// Identity is the resolved session: who is calling and with what role.
// It is derived per request from the cookie, never stored in-process.
type Identity struct {
	UserID       uuid.UUID
	Email        string
	Role         model.Role
	DepartmentID *uuid.UUID
}

type AuthMiddleware struct {
	secret string
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

// RequireAuth resolves the session token (cookie first, bearer header as
// fallback) and stores the identity in the request context. Any invalid
// token yields the same 401 regardless of why it failed.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenString = parts[1]
				}
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		claims := credentials.ParseToken(m.secret, tokenString)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		identity, ok := identityFromClaims(claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// RequireCapability gates a route on a role capability, e.g.
// RequireCapability(model.Role.CanTriage). Runs after RequireAuth and
// before any handler touches data.
func (m *AuthMiddleware) RequireCapability(allowed func(model.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			c.Abort()
			return
		}

		if !allowed(identity.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}

	identity, ok := value.(Identity)
	return identity, ok
}

func identityFromClaims(claims *credentials.Claims) (Identity, bool) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, false
	}

	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return Identity{}, false
	}

	identity := Identity{
		UserID: userID,
		Email:  claims.Email,
		Role:   role,
	}

	if claims.DepartmentID != nil {
		deptID, err := uuid.Parse(*claims.DepartmentID)
		if err != nil {
			return Identity{}, false
		}
		identity.DepartmentID = &deptID
	}

	return identity, true
}
