package credential

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const MinCost = bcrypt.MinCost

var ErrMalformedBasic = errors.New("malformed basic credentials")

type ICredential interface {
	Username() string
	Match(username, password string) bool
}

// admin holds the single configured account. Only the bcrypt hash of the
// password is kept after construction.
type admin struct {
	username     string
	passwordHash []byte
}

func New(username, password string) (ICredential, error) {
	return NewWithCost(username, password, bcrypt.DefaultCost)
}

func NewWithCost(username, password string, cost int) (ICredential, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	return &admin{
		username:     username,
		passwordHash: hash,
	}, nil
}

func (a *admin) Username() string {
	return a.username
}

func (a *admin) Match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// ParseBasic decodes the payload of an "Authorization: Basic ..." header.
func ParseBasic(encoded string) (string, string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", ErrMalformedBasic
	}

	username, password, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", ErrMalformedBasic
	}

	return username, password, nil
}

func EncodeBasic(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}
