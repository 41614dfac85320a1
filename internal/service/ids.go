package service

import (
	"fmt"
	"math/rand"
)

const tokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewComplaintID returns a human-shareable complaint id like JV-482913.
// Uniqueness is enforced by the store; callers retry on collision.
func NewComplaintID() string {
	return fmt.Sprintf("JV-%06d", 100000+rand.Intn(900000))
}

// NewPickupID returns a pickup id like PICKUP482913.
func NewPickupID() string {
	return fmt.Sprintf("PICKUP%06d", 100000+rand.Intn(900000))
}

// NewToken returns the secondary display token shown to the citizen.
func NewToken(length int) string {
	if length <= 0 {
		length = 12
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = tokenChars[rand.Intn(len(tokenChars))]
	}
	return string(b)
}
