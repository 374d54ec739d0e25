package config

import (
	"crypto/rand"
	"encoding/hex"
)

// randomSecret generates a per-process session secret when none is
// configured. Grants signed with it become invalid on restart.
func randomSecret() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}
