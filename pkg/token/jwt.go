package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired          = errors.New("token has expired")
	ErrMalformed        = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
)

// AdviserClaims is the nested profile block consumed by downstream
// authorization.
type AdviserClaims struct {
	Names            string `json:"adviser_names,omitempty"`
	AdviserID        int64  `json:"adviser_id,omitempty"`
	Address          string `json:"adviser_address,omitempty"`
	MobileNo         string `json:"adviser_mobile_no,omitempty"`
	FixedPhone       string `json:"adviser_fixed_phone,omitempty"`
	Email            string `json:"adviser_email,omitempty"`
	KraPIN           string `json:"adviser_kra_pin,omitempty"`
	AccountNumber    string `json:"adviser_account_number,omitempty"`
	PartnerNumber    string `json:"adviser_partner_number,omitempty"`
	IntermediaryType string `json:"adviser_intermediary_type,omitempty"`
}

// Claims is the signed bearer payload: identity, role and profile data.
type Claims struct {
	UserID   string         `json:"user_id"`
	Role     string         `json:"role"`
	Email    string         `json:"email,omitempty"`
	MobileNo string         `json:"mobile_no,omitempty"`
	Names    string         `json:"names,omitempty"`
	Adviser  *AdviserClaims `json:"adviser,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies bearer tokens with a service-wide secret.
type Service struct {
	signingKey []byte
	issuer     string
	validity   time.Duration
}

func NewService(signingKey, issuer string, validity time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		validity:   validity,
	}
}

func (s *Service) Validity() time.Duration {
	return s.validity
}

// Sign issues a token with subject, issuer and configured expiry filled in.
func (s *Service) Sign(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return newToken.SignedString(s.signingKey)
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}

	return claims, nil
}
