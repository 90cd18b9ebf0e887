package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a customer credential with the configured
// cost. The hash is what lands in customers.password_hash; the plain
// password is never stored.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks a login attempt against the stored hash in
// constant time. It reports only match or no match; callers treat both
// unknown handle and wrong password as the same credential failure.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
