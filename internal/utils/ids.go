package utils

import (
	crand "crypto/rand"
	"math/big"
	mrand "math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	idRandomLength = 8
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var base36Max = big.NewInt(int64(len(base36Alphabet)))

// GenerateID returns a logical identifier made of the current time in base 36
// followed by a random base-36 fragment.
func GenerateID() string {
	return generateIDAt(time.Now())
}

func generateIDAt(now time.Time) string {
	var builder strings.Builder
	builder.Grow(16)
	builder.WriteString(strconv.FormatInt(now.UnixMilli(), 36))

	for i := 0; i < idRandomLength; i++ {
		builder.WriteByte(base36Alphabet[randomIndex()])
	}

	return builder.String()
}

func randomIndex() int64 {
	n, err := crand.Int(crand.Reader, base36Max)
	if err != nil {
		return mrand.Int63n(base36Max.Int64())
	}
	return n.Int64()
}
