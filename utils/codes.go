package utils

import (
	"math/rand"
	"sync"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var mu sync.Mutex
var seededRand *rand.Rand

func init() {
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
}

func randomCode(length int) string {
	mu.Lock()
	defer mu.Unlock()

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = codeAlphabet[seededRand.Intn(len(codeAlphabet))]
	}
	return string(buf)
}

// GenerateOrderNumber returns the 6-character order code shown on the
// invoice page, e.g. "X4K9P2".
func GenerateOrderNumber() string {
	return randomCode(6)
}

// GenerateShortCode returns the 8-character code used in /p/{code} links.
func GenerateShortCode() string {
	return randomCode(8)
}

// Truncate caps s at max runes. Handlers shape every string field before
// writing; this mirrors the column sizes, it is not schema validation.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
