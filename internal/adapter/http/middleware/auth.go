package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tasktree/internal/core/ports"
	"tasktree/pkg/apierrors"
)

const (
	userIDKey       = "user_id"
	authTokenHeader = "auth-token"
)

// RequireAuth rejects the request with 401 unless it carries a valid token,
// either as "Authorization: Bearer <token>" or in the auth-token header.
func RequireAuth(verifier ports.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = strings.TrimSpace(c.GetHeader(authTokenHeader))
		}

		if token == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := verifier.Verify(token)
		if err != nil {
			_ = c.Error(err)
			abortUnauthorized(c)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user, or 0 outside RequireAuth.
func GetUserID(c *gin.Context) uint64 {
	if value, exists := c.Get(userIDKey); exists {
		if id, ok := value.(uint64); ok {
			return id
		}
	}
	return 0
}

func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, GetLang(c)),
	)
}
