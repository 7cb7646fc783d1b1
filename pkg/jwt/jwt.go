package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación, clasificados para que las capas superiores puedan
// registrar la causa sin exponerla al cliente.
var (
	ErrTokenMalformado = errors.New("jwt: token malformado")
	ErrFirmaInvalida   = errors.New("jwt: firma inválida")
	ErrTokenExpirado   = errors.New("jwt: token expirado")
)

// Claims incluye los claims estándar JWT más el email del usuario.
// El subject transporta el id_usuario como string decimal.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Generate genera un token HS256 con claims {sub: idUsuario, email, iat: now, exp: now + ttl}.
// El instante `now` se pasa explícito para que la expiración sea determinista.
func Generate(secret string, idUsuario int64, email string, now time.Time, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(idUsuario, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve idUsuario y email.
// Sin margen de reloj: un token cuyo exp ya pasó es ErrTokenExpirado.
func Parse(secret, tokenString string) (idUsuario int64, email string, err error) {
	if secret == "" {
		return 0, "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, "", classify(err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, "", ErrTokenMalformado
	}
	idUsuario, err = strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: subject no numérico", ErrTokenMalformado)
	}
	return idUsuario, claims.Email, nil
}

// classify traduce los errores de la librería a los sentinelas del paquete.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformado, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrFirmaInvalida, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpirado, err)
	default:
		return fmt.Errorf("jwt: token inválido: %w", err)
	}
}
