package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims Standard-Claims plus der Akteursname der Anwendung. Der Akteur landet
// in created_by/updated_by der Fachdaten.
type Claims struct {
	jwt.RegisteredClaims
	Actor string `json:"actor"`
}

// Generate erzeugt einen signierten Token für den Akteur.
func Generate(secret, actor, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: leeres Secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Actor: actor,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validiert den Token und liefert den Akteur. Fehler bei ungültiger
// Signatur, abgelaufenem Token oder fehlendem Akteur.
func Parse(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: leeres Secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unerwartetes Signaturverfahren: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("ungültige Claims")
	}
	actor := claims.Actor
	if actor == "" {
		actor = claims.Subject
	}
	if actor == "" {
		return "", fmt.Errorf("kein Akteur im Token")
	}
	return actor, nil
}
