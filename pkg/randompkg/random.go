// Package randompkg provides functionality for generating random test fixtures.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int64) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Int64Between generates a random integer between min and max.
func Int64Between(min, max int64) int64 {
	return min + Intn(max-min+1)
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := int64(len(alphabet))

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Owner generates a random owner username.
func Owner() string {
	return String(6)
}

// AccountNumber generates a random 10-digit account number.
func AccountNumber() string {
	return fmt.Sprintf("%010d", Int64Between(1_000_000_000, 9_999_999_999))
}

// Balance generates a random account balance.
func Balance() int64 {
	return Int64Between(1_000, 10_000)
}

// TransactionID generates a random 32-character hex transaction id.
func TransactionID() string {
	const hexdigits = "0123456789abcdef"

	var sb strings.Builder

	for i := 0; i < 32; i++ {
		_ = sb.WriteByte(hexdigits[Intn(16)])
	}

	return sb.String()
}
