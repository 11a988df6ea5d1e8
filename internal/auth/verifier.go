// Package auth defines the contract with the external credential verifier and
// provides its JWT implementation. Token issuance lives outside this service;
// only decoding a bearer credential into a role and identity happens here.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Known roles. Any other role value in a valid token is still accepted for
// read and create operations; the capability table decides what it may do.
const (
	RoleMember  = "member"
	RoleOfficer = "officer"
	RoleGM      = "gm"
)

// ErrInvalidToken is returned for any credential that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified content of a credential: who the caller is and what
// role they carry.
type Claims struct {
	Identity string
	Role     string
}

// Verifier decodes a bearer credential into claims or rejects it.
type Verifier interface {
	Verify(token string) (*Claims, error)
}

// JWTVerifier verifies HMAC-signed JWTs issued by the external auth service.
// The identity is the "sub" claim, the role the "role" claim.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a verifier for tokens signed with the given shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token and extracts identity and role.
func (v *JWTVerifier) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrInvalidToken
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{Identity: sub, Role: role}, nil
}
