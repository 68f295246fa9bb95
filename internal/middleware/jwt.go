package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"fleet_manager/internal/config"
	"fleet_manager/internal/models"
)

// tokenTTL is how long an issued token stays valid.
const tokenTTL = 24 * time.Hour

var secret = []byte(getJWTSecret())

func getJWTSecret() string {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return val
	}
	return "supersecret" // fallback
}

// Claims is the decoded payload of a verified token.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed HS256 token for the user, expiring 24 hours
// after issuance.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates signature and expiry. Malformed tokens, signature
// mismatches and expired tokens all map to the same error outcome.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}

// CurrentUser resolves the authenticated user from the request's bearer
// token. A missing or malformed header, a bad token, or a user row that no
// longer exists (or is deactivated) all yield (nil, false).
func CurrentUser(c *gin.Context) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, false
	}

	claims, err := ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil, false
	}

	var user models.User
	if err := config.DB.First(&user, claims.UserID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Error(err)
		}
		return nil, false
	}
	if !user.IsActive {
		return nil, false
	}
	return &user, true
}

// RequireAuth ensures a valid token resolves to an existing user and stores
// that user in the context for downstream handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token is missing or invalid",
			})
			return
		}
		c.Set("current_user", user)
		c.Next()
	}
}

// RequireRoles ensures a valid token whose user holds one of the allowed
// roles. Composing the allowed-role set at route-registration time keeps the
// guards explicit; no per-role wrappers needed.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Token is missing or invalid",
			})
			return
		}
		for _, role := range allowed {
			if user.Role == role {
				c.Set("current_user", user)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access denied. Required roles: " + strings.Join(allowed, ", "),
		})
	}
}

// MustCurrentUser returns the user stored by RequireAuth / RequireRoles.
func MustCurrentUser(c *gin.Context) *models.User {
	return c.MustGet("current_user").(*models.User)
}
