package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPDigits is the length of verification and reset codes.
const OTPDigits = 6

// GenNumericCode returns a uniformly random, zero-padded code of n digits.
func GenNumericCode(n int) (string, error) {
	if n <= 0 || n > 18 {
		return "", fmt.Errorf("otp: invalid length %d", n)
	}
	space := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, space)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}

// GenOTPCode generates a verification code of OTPDigits digits.
func GenOTPCode() (string, error) {
	return GenNumericCode(OTPDigits)
}
