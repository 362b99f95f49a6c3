package utils

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	redis "github.com/redis/go-redis/v9"
)

type contextKey string

// RequestIDKey carries the per-request id injected by the middleware chain.
const RequestIDKey = contextKey("requestID")

// RedisClient is an optional shared Redis client used for admin token
// revocation. It is nil when REDIS_ADDR is not configured; revocation then
// degrades to client-side token discard.
var RedisClient *redis.Client

func init() {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return
	}
	opts := &redis.Options{Addr: addr}
	if p := os.Getenv("REDIS_PASS"); p != "" {
		opts.Password = p
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		var dbn int
		_, _ = fmt.Sscanf(dbStr, "%d", &dbn)
		opts.DB = dbn
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(context.Background()).Err(); err != nil {
		fmt.Printf("warning: redis ping failed: %v\n", err)
		return
	}
	RedisClient = rc
}

const adminTokenLifetime = 6 * time.Hour

// GenerateAdminToken issues a signed, expiring admin access token. The admin
// credential itself is the shared ADMIN_PASSWORD; the token is what every
// subsequent admin action is validated against.
func GenerateAdminToken() (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	jti, err := randomHex(16)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  now.Add(adminTokenLifetime).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  jti,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken parses and validates an admin access token: signature,
// registered claims, admin role, and (when redis is configured) jti revocation.
func ValidateAdminToken(tokenStr string) (jwt.MapClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return nil, errors.New("not an admin token")
	}
	if RedisClient != nil {
		if jti, _ := claims["jti"].(string); jti != "" {
			n, err := RedisClient.Exists(context.Background(), revocationKey(jti)).Result()
			if err == nil && n > 0 {
				return nil, errors.New("token revoked")
			}
		}
	}
	return claims, nil
}

// RevokeAdminToken places the token's jti on the revocation list until its
// natural expiry. Best-effort: without redis there is nothing to do.
func RevokeAdminToken(claims jwt.MapClaims) error {
	if RedisClient == nil {
		return nil
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil
	}
	ttl := adminTokenLifetime
	if exp, ok := claims["exp"].(float64); ok {
		if d := time.Until(time.Unix(int64(exp), 0)); d > 0 {
			ttl = d
		}
	}
	return RedisClient.Set(context.Background(), revocationKey(jti), "1", ttl).Err()
}

func revocationKey(jti string) string {
	return "admin:revoked:" + jti
}

// GenerateSessionToken returns a fresh opaque operator session token.
// Persisting it replaces any previous token: last login wins.
func GenerateSessionToken() (string, error) {
	return randomHex(32)
}

// SessionTokenMatches compares a presented token against the stored one in
// constant time. A nil or empty stored token never matches.
func SessionTokenMatches(stored *string, presented string) bool {
	if stored == nil || *stored == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(presented)) == 1
}

// ConstantTimeEquals compares two secrets without leaking length-adjacent
// timing. Used for the admin password check.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func randomHex(nBytes int) (string, error) {
	buf := make([]byte, nBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
