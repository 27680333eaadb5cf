package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gravitational/trace"
)

var signingKey []byte

// Init sets the HS256 key used to verify incoming tokens. Must be called
// once at startup before any request is served.
func Init(secret string) {
	signingKey = []byte(secret)
}

// VerifyToken extracts the trusted user identifier from the request. The
// token is only an identity proof; authorization decisions (admin or owner
// checks) are always made against stored records, never token claims.
func VerifyToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", trace.AccessDenied("no authorization header")
	}

	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, trace.BadParameter("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", trace.AccessDenied("invalid token: %v", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", trace.AccessDenied("token carries no subject")
	}

	return subject, nil
}
