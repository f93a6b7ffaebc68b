package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a respondent token encodes: the opaque respondent
// identity and the survey session it may submit for.
type RespondentClaims struct {
	InstanceID string            `json:"instance_id,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Payload    map[string]string `json:"payload,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewRespondentToken(
	expiresIn time.Duration,
	respondentID string,
	instanceID string,
	sessionID string,
	payload map[string]string,
	secretKey string,
) (tokenString string, err error) {
	claims := RespondentClaims{
		instanceID,
		sessionID,
		payload,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   respondentID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateRespondentToken(tokenString string, secretKey string) (claims *RespondentClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &RespondentClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*RespondentClaims)
	valid = valid && token.Valid
	return
}
