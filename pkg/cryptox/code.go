package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// InviteAlphabet is the character set for invite codes: lowercase so codes
// survive being read out over the phone.
const InviteAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// InviteCodeLength gives 36^12 (about 4.7e18) possible codes.
const InviteCodeLength = 12

// GenerateCode returns a uniformly random string of length n drawn from alphabet.
func GenerateCode(alphabet string, n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", n)
	}
	if len(alphabet) < 2 {
		return "", fmt.Errorf("alphabet needs at least 2 characters, got %d", len(alphabet))
	}

	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		r, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %w", err)
		}
		out[i] = alphabet[r.Int64()]
	}
	return string(out), nil
}

// GenerateInviteCode returns a fresh invite code.
func GenerateInviteCode() (string, error) {
	return GenerateCode(InviteAlphabet, InviteCodeLength)
}
