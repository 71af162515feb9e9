package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func loadTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	privateKey = key
	publicKey = &key.PublicKey
}

func TestSignAndValidTableAccess(t *testing.T) {
	loadTestKeys(t)

	signed, err := Sign(18, "table-uuid")
	assert.NoError(t, err)

	playerID, tableUUID, err := ValidTableAccess(signed)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), playerID)
	assert.Equal(t, "table-uuid", tableUUID)
}

func TestValidTableAccess_InvalidAudience(t *testing.T) {
	loadTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, TableClaims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{"different-audience"},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(time.Now()),
			Issuer:   Issuer,
			Subject:  "15",
		},
		TableUUID: "table-uuid",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	playerID, tableUUID, err := ValidTableAccess(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, int64(0), playerID)
	assert.Equal(t, "", tableUUID)
}

func TestValidTableAccess_InvalidIssuer(t *testing.T) {
	loadTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, TableClaims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(time.Now()),
			Issuer:   "invalid-issuer",
			Subject:  "15",
		},
		TableUUID: "table-uuid",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	_, _, err = ValidTableAccess(signedToken)
	assert.EqualError(t, err, "invalid issuer")
}
