package auth

import "golang.org/x/crypto/bcrypt"

// Raising the cost only affects newly stored hashes; existing hashes keep
// the cost they were created with.
const bcryptCost = 10

// HashPassword derives a salted one-way hash of password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether password matches the stored hash.
// The comparison is constant-time inside bcrypt.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
