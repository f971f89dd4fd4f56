package session

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// entraClaims are the Entra ID access-token claims the manager reads for
// display purposes. The token is parsed without signature verification: it
// was issued to this client moments ago, and the directory API is the party
// that validates it.
type entraClaims struct {
	jwt.RegisteredClaims
	Name              string `json:"name"`
	PreferredUsername string `json:"preferred_username"`
	TenantID          string `json:"tid"`
	ObjectID          string `json:"oid"`
	Scopes            string `json:"scp"`
}

func parseClaims(tokenString string) (*entraClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	var claims entraClaims
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, errors.Wrap(err, "[parseClaims] ParseUnverified")
	}
	return &claims, nil
}
