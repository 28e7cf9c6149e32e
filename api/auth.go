package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

type forecastClaims struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

func parseBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("missing bearer token")
	}
	return strings.TrimSpace(parts[1]), nil
}

func parseJWT(jwtStr string, decodeToken string) (*forecastClaims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(decodeToken), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}

	out := &forecastClaims{}
	if sub, ok := claims["sub"].(string); ok {
		out.Subject = sub
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("jwt has no expiry")
	}
	out.ExpiresAt = int64(exp)

	if time.Now().UTC().Unix() > out.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}

	return out, nil
}

// authMiddleware requires an HS256 bearer token signed with decodeToken
func authMiddleware(decodeToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := parseBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			returnErrorJsonCode(err, c, http.StatusUnauthorized)
			return
		}
		claims, err := parseJWT(tokenStr, decodeToken)
		if err != nil {
			returnErrorJsonCode(err, c, http.StatusUnauthorized)
			return
		}
		c.Set("subject", claims.Subject)
		c.Next()
	}
}
