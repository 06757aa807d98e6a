package otp

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Period is the OTP validity window in seconds. Codes are emailed, so
// the window is longer than the authenticator-app default.
const Period = 120

// Skew is how many adjacent periods are accepted on verification.
const Skew = 1

// ValidMinutes is the advertised code lifetime, covering the current
// period plus the accepted skew.
const ValidMinutes = Period * (Skew + 1) / 60

// GenerateSecret creates a new base32 TOTP seed for an account.
func GenerateSecret(issuer, accountName string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Period:      Period,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// GenerateCode derives the current 6-digit code from a secret.
func GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, validateOpts())
}

// Verify checks a code against a secret, accepting one period of skew.
func Verify(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, validateOpts())
	if err != nil {
		return false
	}
	return ok
}

func validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    Period,
		Skew:      Skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}
