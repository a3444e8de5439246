package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sjperalta/debtbook-api/internal/i18n"
	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/internal/policy"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

const principalKey = "principal"

// Claims represents the JWT claims issued by the identity provider.
// The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RoleResolver returns the application role of a user, creating the default
// one on first sight
type RoleResolver interface {
	EnsureRole(ctx context.Context, userID string) (*models.UserRole, error)
}

// Auth returns a middleware that validates JWT tokens and stores the
// resolved policy.Principal in the context
func Auth(jwtSecret string, roles RoleResolver, defaultLocale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := Locale(c, defaultLocale)

		// Get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		tokenString := ""

		if authHeader == "" {
			// Check query param for download links
			tokenString = c.Query("token")
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": i18n.T(locale, i18n.MsgUnauthorized),
				})
				return
			}
		} else {
			// Extract token from "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": i18n.T(locale, i18n.MsgUnauthorized),
				})
				return
			}
			tokenString = parts[1]
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": i18n.T(locale, i18n.MsgUnauthorized),
			})
			return
		}

		role, err := roles.EnsureRole(c.Request.Context(), claims.Subject)
		if err != nil {
			logger.Error("Role resolution failed", "user_id", claims.Subject, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": i18n.T(locale, i18n.MsgInternal),
			})
			return
		}

		c.Set(principalKey, policy.Principal{
			UserID: claims.Subject,
			Email:  claims.Email,
			Role:   role.Role,
			Locale: locale,
		})
		c.Set("userID", claims.Subject)

		c.Next()
	}
}

// validateToken parses and validates a JWT token string
func validateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}

// Locale returns the request's Accept-Language header, or fallback
func Locale(c *gin.Context, fallback string) string {
	if lang := c.GetHeader("Accept-Language"); lang != "" {
		return lang
	}
	return fallback
}

// GetPrincipal extracts the authenticated principal from the Gin context
func GetPrincipal(c *gin.Context) (policy.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return policy.Principal{}, false
	}
	principal, ok := value.(policy.Principal)
	return principal, ok
}

// SetPrincipal stores principal in the context
func SetPrincipal(c *gin.Context, principal policy.Principal) {
	c.Set(principalKey, principal)
	c.Set("userID", principal.UserID)
}

// RequireAdmin returns a middleware that requires the admin or god role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || !principal.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": i18n.T(principal.Locale, i18n.MsgForbidden),
			})
			return
		}
		c.Next()
	}
}
