package authmw

import "golang.org/x/crypto/bcrypt"

// MinPasswordLength applies everywhere a credential is set: provisioning,
// bulk creation and admin password resets.
const MinPasswordLength = 6

// HashPassword returns the one-way digest stored in users.password_hash.
func HashPassword(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func CheckPassword(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
