package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenLifetime is how long an issued session token stays valid. There is no
// refresh mechanism; expiry means the client logs in again.
const TokenLifetime = 7 * 24 * time.Hour

// Identity is the decoded claim set attached to a request after a token
// passes verification. It is built fresh per request and never cached.
type Identity struct {
	UserID string
	Email  string
}

// Authority issues and verifies session tokens. It holds no mutable state
// beyond its configuration, so it is safe for concurrent use.
type Authority struct {
	signer  Signer
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// AuthorityOption defines a function type to modify the Authority instance.
type AuthorityOption func(*Authority)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) AuthorityOption {
	return func(a *Authority) {
		a.nowTime = nowFunc
	}
}

// NewAuthority initializes a new Authority with the signer holding the
// process-wide secret. The secret's presence is validated at startup, not
// per call.
func NewAuthority(signer Signer, options ...AuthorityOption) (*Authority, error) {
	if signer == nil {
		return nil, errors.New("[NewAuthority] signer is required")
	}

	authority := &Authority{
		signer:  signer,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(authority)
	}

	return authority, nil
}

// CreateToken mints a signed session token for the subject. The issuance
// timestamp is carried as epoch milliseconds in the "iat" claim; expiry is a
// standard "exp" claim set seven days out.
func (a *Authority) CreateToken(userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("[CreateToken] empty subject id")
	}

	now := a.nowTime()
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"iat":    now.UnixMilli(),
		"exp":    now.Add(TokenLifetime).Unix(),
	}

	signedToken, err := a.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[CreateToken] signer.Sign")
	}
	return signedToken, nil
}

// VerifyToken checks the signature and expiry of a raw session token and
// returns the identity it asserts. All verification failures collapse into
// InvalidTokenErr so callers cannot tell which check failed.
func (a *Authority) VerifyToken(rawToken string) (*Identity, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, MissingTokenErr
	}

	token, err := jwt.Parse(rawToken, a.signer.GetVerificationKey,
		jwt.WithValidMethods([]string{a.signer.GetSigningMethod().Alg()}))
	if err != nil || !token.Valid {
		return nil, InvalidTokenErr
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, InvalidTokenErr
	}

	// The library already validates "exp", but the gate contract requires an
	// explicit check against the authority clock as well.
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil || !exp.After(a.nowTime()) {
		return nil, InvalidTokenErr
	}

	userID, _ := claims["userId"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return nil, InvalidTokenErr
	}

	return &Identity{UserID: userID, Email: email}, nil
}
