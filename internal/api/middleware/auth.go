package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-ownership-resolver/internal/api/shared/errors"
	"github.com/feral-file/ff-ownership-resolver/internal/logger"
)

const (
	AUTH_TYPE_KEY    = "auth_type"
	AUTH_SUBJECT_KEY = "auth_subject"

	AUTH_TYPE_JWT    = "jwt"
	AUTH_TYPE_APIKEY = "apikey"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// Authenticator validates Authorization headers against a JWT public key and a set of API keys
type Authenticator struct {
	publicKey *rsa.PublicKey
	keyErr    error
	apiKeys   map[string]struct{}
}

// NewAuthenticator parses the configured credentials once
func NewAuthenticator(cfg AuthConfig) *Authenticator {
	a := &Authenticator{apiKeys: make(map[string]struct{}, len(cfg.APIKeys))}
	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys[key] = struct{}{}
		}
	}

	if cfg.JWTPublicKey == "" {
		a.keyErr = errors.New("JWT public key not configured")
	} else {
		a.publicKey, a.keyErr = parseRSAPublicKey(cfg.JWTPublicKey)
	}

	return a
}

// Authenticate validates an Authorization header and returns the auth type and subject
func (a *Authenticator) Authenticate(authHeader string) (authType string, subject string, err error) {
	if authHeader == "" {
		return "", "", errors.New("missing Authorization header")
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok || credentials == "" {
		return "", "", errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(scheme) {
	case "bearer":
		claims, err := a.validateJWT(credentials)
		if err != nil {
			return "", "", err
		}
		return AUTH_TYPE_JWT, claims.Subject, nil
	case "apikey":
		if len(a.apiKeys) == 0 {
			return "", "", errors.New("no API keys configured")
		}
		if _, ok := a.apiKeys[credentials]; !ok {
			return "", "", errors.New("invalid API key")
		}
		return AUTH_TYPE_APIKEY, "", nil
	default:
		return "", "", fmt.Errorf("unsupported authorization type: %s", scheme)
	}
}

// Auth returns a gin middleware accepting either a JWT bearer token or an API key
func Auth(cfg AuthConfig) gin.HandlerFunc {
	authenticator := NewAuthenticator(cfg)

	return func(c *gin.Context) {
		authType, subject, err := authenticator.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError("Authentication failed", err.Error()))
			return
		}

		c.Set(AUTH_TYPE_KEY, authType)
		if subject != "" {
			c.Set(AUTH_SUBJECT_KEY, subject)
		}

		c.Next()
	}
}

// validateJWT validates an RS256 token; expiry and not-before are checked by the parser
func (a *Authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, error) {
	if a.keyErr != nil {
		return nil, a.keyErr
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key in PKIX or PKCS1 PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
