package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"business-directory-api/access"
	"business-directory-api/config"
	"business-directory-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"

	callerKey = "caller"
)

type Claims struct {
	UserID          uint   `json:"user_id"`
	Username        string `json:"username"`
	IsBusinessOwner bool   `json:"is_business_owner"`
	TokenType       string `json:"token_type"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("token is invalid or expired")

func signToken(user *models.User, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:          user.ID,
		Username:        user.Username,
		IsBusinessOwner: user.IsBusinessOwner,
		TokenType:       kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.AppConfig.JWTSecret)
}

// GenerateTokenPair issues a short-lived access token and a longer-lived
// refresh token for user.
func GenerateTokenPair(user *models.User) (accessToken, refreshToken string, err error) {
	accessToken, err = signToken(user, AccessToken, config.AppConfig.AccessTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refreshToken, err = signToken(user, RefreshToken, config.AppConfig.RefreshTokenTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// ParseToken verifies signature, expiry and token type.
func ParseToken(tokenStr, kind string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return config.AppConfig.JWTSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != kind || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Authenticate resolves an optional bearer token to a caller. Requests
// without a token continue anonymously; a bad token is rejected outright.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be Bearer <token>"})
			c.Abort()
			return
		}
		claims, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "), AccessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		// Flags are read from the store, not the token, so revoking the
		// owner flag takes effect immediately.
		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			c.Abort()
			return
		}
		c.Set(callerKey, access.Caller{
			UserID:          user.ID,
			Username:        user.Username,
			IsBusinessOwner: user.IsBusinessOwner,
		})
		c.Next()
	}
}

// Authorize enforces the access policy for one resource action.
func Authorize(res access.Resource, act access.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := access.Check(res, act, GetCaller(c)); err != nil {
			AbortWithAccessError(c, err)
			return
		}
		c.Next()
	}
}

// AbortWithAccessError writes 401 for a missing identity and 403 otherwise.
func AbortWithAccessError(c *gin.Context, err error) {
	status := http.StatusForbidden
	if errors.Is(err, access.ErrUnauthenticated) {
		status = http.StatusUnauthorized
	}
	c.AbortWithStatusJSON(status, gin.H{"error": access.Message(err)})
}

// GetCaller returns the request's caller; anonymous when unauthenticated.
func GetCaller(c *gin.Context) access.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(access.Caller); ok {
			return caller
		}
	}
	return access.Caller{}
}

// GetUserID extracts the caller's user ID, zero when anonymous.
func GetUserID(c *gin.Context) uint {
	return GetCaller(c).UserID
}
