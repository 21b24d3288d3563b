// Package token emite y verifica los capability tokens del tracker.
//
// Los tokens son JWT HS256 firmados con un secreto de proceso cargado al
// arrancar e inmutable después. Son stateless: su validez depende sólo de la
// firma y de exp; no hay revocación server-side (logout es no-op).
package token

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Leeway tolerado al validar exp/nbf (clock skew entre nodos).
const clockSkew = 30 * time.Second

var (
	// ErrInvalid cubre firma inválida, payload adulterado o claims faltantes.
	ErrInvalid = errors.New("token: invalid")
	// ErrExpired indica un token bien firmado pero vencido.
	ErrExpired = errors.New("token: expired")
)

// Claims es el contenido del capability token:
// {cuenta, tenant-o-ninguno, rol}.
type Claims struct {
	AccountID string
	TenantID  *string // nil cuando la cuenta es la privilegiada sin tenant
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer firma y verifica tokens con el secreto de proceso.
type Issuer struct {
	Iss       string
	Secret    []byte
	AccessTTL time.Duration
}

func NewIssuer(iss string, secret []byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{Iss: iss, Secret: secret, AccessTTL: ttl}
}

// Issue emite un token para la cuenta dada. tenantID nil emite un token
// sin claim "tid" (cuenta cross-tenant).
func (i *Issuer) Issue(accountID string, tenantID *string, role string) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.AccessTTL)

	claims := jwtv5.MapClaims{
		"iss":  i.Iss,
		"sub":  accountID,
		"role": role,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  exp.Unix(),
	}
	if tenantID != nil {
		claims["tid"] = *tenantID
	}

	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	signed, err := tk.SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify valida firma (HS256 pinned), iss, y exp/nbf con leeway. Devuelve
// ErrExpired para tokens vencidos y ErrInvalid para todo el resto; nunca
// distingue más allá de eso para que el rechazo sea determinista.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	tok, err := jwtv5.Parse(raw, func(t *jwtv5.Token) (any, error) {
		return i.Secret, nil
	}, jwtv5.WithValidMethods([]string{"HS256"}), jwtv5.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		return nil, ErrInvalid
	}

	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	if iss, _ := mc["iss"].(string); iss != i.Iss {
		return nil, ErrInvalid
	}

	now := time.Now()
	expf, ok := mc["exp"].(float64)
	if !ok {
		return nil, ErrInvalid
	}
	exp := time.Unix(int64(expf), 0)
	if exp.Before(now.Add(-clockSkew)) {
		return nil, ErrExpired
	}
	if nbff, ok := mc["nbf"].(float64); ok {
		if time.Unix(int64(nbff), 0).After(now.Add(clockSkew)) {
			return nil, ErrInvalid
		}
	}

	sub, _ := mc["sub"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || role == "" {
		return nil, ErrInvalid
	}

	c := &Claims{
		AccountID: sub,
		Role:      role,
		ExpiresAt: exp,
	}
	if iatf, ok := mc["iat"].(float64); ok {
		c.IssuedAt = time.Unix(int64(iatf), 0)
	}
	if tid, ok := mc["tid"].(string); ok && tid != "" {
		c.TenantID = &tid
	}
	return c, nil
}
