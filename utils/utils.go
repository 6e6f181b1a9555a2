package utils

import (
	"fmt"
	rndm "math/rand"
	"time"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateGuestID mints an anonymous user identifier, a timestamp plus a
// random suffix so collisions across restarts are not a concern.
func GenerateGuestID() string {
	return fmt.Sprintf("guest_%d_%s", time.Now().UnixMilli(), GenerateRandomString(9))
}
