package authapi

import "math/rand/v2"

// ResetCodeLength is the fixed length of password recovery codes.
const ResetCodeLength = 6

const resetCodeDigits = "0123456789"

// GenerateResetCode returns a 6-digit numeric recovery code drawn from
// a uniform random source. These are human-typed convenience codes, not
// capability tokens; uniqueness under storage is the store's concern
// (last writer wins).
func GenerateResetCode() string {
	buf := make([]byte, ResetCodeLength)
	for i := range buf {
		buf[i] = resetCodeDigits[rand.IntN(len(resetCodeDigits))]
	}
	return string(buf)
}
