package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// UserIDKey holds the authenticated user id (int64) in the gin context.
const UserIDKey = "user_id"

var errInvalidToken = errors.New("invalid token")

// Claims 签发方只需把用户 id 放进 sub
type Claims struct {
	jwt.RegisteredClaims
}

// AuthMiddleware loads the caller from a Bearer token. It never aborts:
// a missing or invalid token leaves the request anonymous and the usecase decides.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			c.Next()
			return
		}

		userID, err := parseUserID(raw, key)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path": c.FullPath(),
			}).Debugf("ignoring bearer token: %v", err)
			c.Next()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func parseUserID(raw string, key []byte) (int64, error) {
	if len(key) == 0 {
		return 0, errInvalidToken
	}
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errInvalidToken
		}
		return key, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return 0, errInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidToken
	}
	return id, nil
}
