package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"dellcube/models"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// Claims is what the admin surface knows about the caller. Company/Branch
// are hex object ids; empty for super admins without a home scope.
type Claims struct {
	UserID  string
	Role    string
	Company string
	Branch  string
}

func (c *Claims) IsSuperAdmin() bool {
	return c.Role == models.RoleSuperAdmin
}

// IssueToken signs a 24h HS256 token for the user.
func IssueToken(secret string, user *models.AppUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID.Hex(),
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	if user.Company != nil {
		claims["company"] = user.Company.Hex()
	}
	if user.Branch != nil {
		claims["branch"] = user.Branch.Hex()
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// unauthorized writes the same {success, message} envelope the handlers use,
// so API consumers see one error shape regardless of where auth fails.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// RequireAuth verifies the bearer token and stashes the caller's claims in
// the request context.
func RequireAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "missing or invalid authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			unauthorized(w, "invalid or expired token")
			return
		}

		mapClaims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(w, "invalid token claims")
			return
		}

		claims := &Claims{}
		if sub, ok := mapClaims["sub"].(string); ok {
			claims.UserID = sub
		}
		if role, ok := mapClaims["role"].(string); ok {
			claims.Role = role
		}
		if company, ok := mapClaims["company"].(string); ok {
			claims.Company = company
		}
		if branch, ok := mapClaims["branch"].(string); ok {
			claims.Branch = branch
		}

		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}
