package utils

import "golang.org/x/crypto/bcrypt"

// Work factor for stored passwords. The bcrypt default keeps login
// latency in the tens of milliseconds on current hardware.
const passwordCost = bcrypt.DefaultCost

// HashPassword derives a storable hash from a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
