package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"galaxypoker-server/internal/config"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "io.galaxypoker.server"

// Audience is the intended JWT audience
const Audience = "server.galaxypoker.io"

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// TableClaims are the claims in a table-access token
type TableClaims struct {
	jwtgo.RegisteredClaims
	TableUUID string `json:"tableUuid"`
}

// LoadKeys will load the public and private keys
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	privateKey = loadPrivateKey(cfg.PrivateKey)
	publicKey = loadPublicKey(cfg.PublicKey)
}

// Sign will sign a table-access token for the player at the table
func Sign(playerID int64, tableUUID string) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, TableClaims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(time.Now()),
			Issuer:   Issuer,
			Subject:  strconv.FormatInt(playerID, 10),
		},
		TableUUID: tableUUID,
	})

	return token.SignedString(privateKey)
}

// ValidTableAccess will validate a signed token and return the player ID and table UUID
func ValidTableAccess(signedString string) (int64, string, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &TableClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})

	if err != nil {
		return 0, "", err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*TableClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return 0, "", errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return 0, "", errors.New("invalid issuer")
			}

			playerID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				return 0, "", err
			}

			return playerID, claims.TableUUID, nil
		}

		return 0, "", fmt.Errorf("expected jwt.TableClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return 0, "", errors.New("claims were not valid")
}

func loadPublicKey(path string) *rsa.PublicKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA public key")
	}

	return pem
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA private key")
	}

	return pem
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
