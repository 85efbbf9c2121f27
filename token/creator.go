package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/go-auth-client/users"
)

const defaultAccessTokenExpiry = 15 * time.Minute

// Claims is the verified content of an access token.
type Claims struct {
	UserID string
	Email  string
	Role   users.RoleType
}

// Creator issues and verifies the HMAC-signed access tokens of the blog API.
type Creator struct {
	secret  []byte
	issuer  string
	expiry  time.Duration
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// CreatorOption defines a function type to modify the Creator instance.
type CreatorOption func(*Creator)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CreatorOption {
	return func(c *Creator) {
		c.nowTime = nowFunc
	}
}

// WithExpiry overrides the default access-token lifetime.
func WithExpiry(expiry time.Duration) CreatorOption {
	return func(c *Creator) {
		c.expiry = expiry
	}
}

// NewCreator initializes a Creator with the signing secret and issuer name.
func NewCreator(secret []byte, issuer string, options ...CreatorOption) (*Creator, error) {
	if len(secret) == 0 {
		return nil, errors.New("[NewCreator] signing secret is required")
	}
	if issuer == "" {
		return nil, errors.New("[NewCreator] issuer is required")
	}

	creator := &Creator{
		secret:  secret,
		issuer:  issuer,
		expiry:  defaultAccessTokenExpiry,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(creator)
	}

	return creator, nil
}

// CreateAccessToken creates a signed access token for the user.
func (c *Creator) CreateAccessToken(user *users.User) (string, error) {
	claims := jwtlib.MapClaims{
		"iss":   c.issuer,                            // The issuer of the token
		"sub":   user.ID,                             // The authenticated user
		"email": user.Email,                          // Convenience claim for the middleware
		"role":  string(user.Role),                   // Authorization data
		"iat":   c.nowTime().Unix(),                  // Issued At
		"exp":   c.nowTime().Add(c.expiry).Unix(),    // Expiry
		"jti":   uuid.New().String(),                 // Unique token ID
	}

	signedToken, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Creator.CreateAccessToken] sign")
	}
	return signedToken, nil
}

// Verify parses and validates a raw access token and returns its claims.
func (c *Creator) Verify(rawToken string) (*Claims, error) {
	parsed, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return c.secret, nil
	},
		jwtlib.WithIssuer(c.issuer),
		jwtlib.WithTimeFunc(func() time.Time { return c.nowTime() }),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[Creator.Verify] parse")
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("[Creator.Verify] invalid token claims")
	}

	claims := &Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.UserID = sub
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = users.RoleType(role)
	}
	if claims.UserID == "" {
		return nil, errors.New("[Creator.Verify] token does not identify a user")
	}

	return claims, nil
}
