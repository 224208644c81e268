package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor used for every stored credential.
const bcryptCost = 10

// HashPassword creates a salted bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
// A mismatch and a malformed stored hash both report false.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
