package utils

import "math/rand"

const sessionIDLength = 13

const sessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// memberColors is the display palette assigned round-robin-by-chance to
// joining members.
var memberColors = []string{
	"#FF5733", "#33FF57", "#3357FF", "#FF33A8",
	"#33FFF5", "#F5FF33", "#FF8333", "#33FFB5",
	"#B533FF", "#FF33B5",
}

// GenerateSessionID mints a short shareable session identifier.
func GenerateSessionID() string {
	b := make([]byte, sessionIDLength)
	for i := range b {
		b[i] = sessionIDAlphabet[rand.Intn(len(sessionIDAlphabet))]
	}
	return string(b)
}

// RandomColor picks a member display color from the palette.
func RandomColor() string {
	return memberColors[rand.Intn(len(memberColors))]
}
