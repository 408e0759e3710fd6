package hash

import "golang.org/x/crypto/bcrypt"

const DefaultCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher wraps bcrypt; a zero Cost falls back to bcrypt's default.
type Hasher struct {
	Cost int
}

func New(cost int) Hasher {
	return Hasher{Cost: cost}
}

func (h Hasher) Hash(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

// Check compares in constant time and reports false for malformed hashes.
func (h Hasher) Check(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
