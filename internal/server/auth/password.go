package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the platform has always used for
// stored credentials. Raising it invalidates nothing: bcrypt embeds the
// cost in each hash, so old hashes keep verifying.
const bcryptCost = 10

// HashPassword produces a salted bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// hash. Malformed hashes simply fail the check; no error escapes.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
