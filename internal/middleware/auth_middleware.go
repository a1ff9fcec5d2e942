package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bathudi/admissions/internal/app/models/dto"
	"github.com/bathudi/admissions/internal/pkg/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by AdminAuth
const (
	AdminIDKey    = "adminID"
	AdminEmailKey = "adminEmail"
	AdminRoleKey  = "adminRole"
)

// AuthMiddleware guards the back-office endpoints
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// AdminAuth validates the access token and stores the admin identity in the context.
// The token is read from the Authorization header, or from the token query
// parameter for clients that cannot set headers (websocket, document links).
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			header = c.Query("token")
		}
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
					WithDetails("Authorization header missing")))
			return
		}

		tokenString, err := auth.ExtractBearerToken(strings.Trim(header, "\"'"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
					WithDetails("Invalid token format")))
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			code, details := dto.ErrorCodeInvalidToken, "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				code, details = dto.ErrorCodeExpiredToken, "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.NewErrorDetail(code, "Authentication failed").WithDetails(details)))
			return
		}

		c.Set(AdminIDKey, claims.AdminID)
		c.Set(AdminEmailKey, claims.Email)
		c.Set(AdminRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAdmin sets the admin identity when a valid token is present and
// never rejects the request. Public endpoints use it to widen listings for admins.
func (m *AuthMiddleware) OptionalAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			header = c.Query("token")
		}
		if header != "" {
			if tokenString, err := auth.ExtractBearerToken(strings.Trim(header, "\"'")); err == nil {
				if claims, err := m.jwtService.ValidateAndExtractClaims(tokenString); err == nil {
					c.Set(AdminIDKey, claims.AdminID)
					c.Set(AdminEmailKey, claims.Email)
					c.Set(AdminRoleKey, claims.Role)
				}
			}
		}
		c.Next()
	}
}
