package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier decides whether a username/password pair may log in.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticVerifier accepts exactly one username/password pair. Only a bcrypt
// hash of the password is kept in memory.
type StaticVerifier struct {
	username string
	hash     []byte
}

func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return &StaticVerifier{username: username, hash: hash}, nil
}

func (v *StaticVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
	return userOK && passOK
}
