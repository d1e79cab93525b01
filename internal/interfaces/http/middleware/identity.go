package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/carpentry/backend/internal/infrastructure/auth"
	"github.com/carpentry/backend/internal/infrastructure/logger"
	"github.com/carpentry/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity context keys
const (
	JWTClaimsKey  = "jwt_claims"
	TenantIDKey   = "tenant_id"
	UserIDKey     = "user_id"
	UsernameKey   = "username"
	TenantHeader  = "X-Tenant-ID"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// IdentityConfig holds configuration for the identity middleware
type IdentityConfig struct {
	Tokens TokenValidator
	// DefaultTenantID is used when the request carries neither a token nor a tenant header
	DefaultTenantID uuid.UUID
	Logger          *zap.Logger
}

// Identity resolves the tenant for every request. A bearer token wins and
// must be valid; without one the X-Tenant-ID header is accepted, else the
// configured default tenant.
func Identity(cfg IdentityConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if header := c.GetHeader(AuthHeaderKey); header != "" {
			claims, err := bearerClaims(cfg.Tokens, header)
			if err != nil {
				log.Warn("token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
				abortUnauthorized(c, err)
				return
			}
			tenantID, _ := claims.TenantUUID()
			c.Set(JWTClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)
			c.Set(UsernameKey, claims.Username)
			setTenant(c, tenantID)
			c.Next()
			return
		}

		if header := c.GetHeader(TenantHeader); header != "" {
			tenantID, err := uuid.Parse(header)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeInvalidTenant, "X-Tenant-ID must be a UUID", GetRequestID(c)))
				return
			}
			setTenant(c, tenantID)
			c.Next()
			return
		}

		setTenant(c, cfg.DefaultTenantID)
		c.Next()
	}
}

func bearerClaims(tokens TokenValidator, header string) (*auth.Claims, error) {
	if tokens == nil || !strings.HasPrefix(header, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	return tokens.ValidateToken(token)
}

func setTenant(c *gin.Context, tenantID uuid.UUID) {
	c.Set(TenantIDKey, tenantID.String())
	if l, ok := c.Get("logger"); ok {
		if zl, ok := l.(*zap.Logger); ok {
			reqLogger := zl.With(zap.String("tenant_id", tenantID.String()))
			c.Set("logger", reqLogger)
			c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))
		}
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	code, message := dto.ErrCodeTokenInvalid, "Invalid token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		message = "Token is not yet valid"
	case errors.Is(err, auth.ErrMissingTenantID), errors.Is(err, auth.ErrMissingUserID), errors.Is(err, auth.ErrInvalidClaims):
		message = "Token claims are incomplete"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetTenantID returns the tenant resolved by Identity
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(TenantIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetUserID returns the authenticated user, or uuid.Nil for header-only requests
func GetUserID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(UserIDKey))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
