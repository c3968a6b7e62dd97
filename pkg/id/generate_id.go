package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// passCodeAlphabet avoids 0/O and 1/I so codes survive being read out at the gate.
const passCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewPassCode returns an 8-char uppercase code used as the public visitor pass identifier.
func NewPassCode() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = passCodeAlphabet[int(v)%len(passCodeAlphabet)]
	}
	return string(out)
}
