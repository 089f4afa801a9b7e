package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey derives "kind:<sha256>" from a figure hash and its key options.
// Options are JSON-encoded so field order in the struct fixes the key.
func hashKey(kind, figureHash string, opts any) string {
	h := sha256.New()
	h.Write([]byte(figureHash))
	h.Write([]byte{0})
	enc, _ := json.Marshal(opts)
	h.Write(enc)
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Figure documents are identified by
// the hash of their canonical JSON.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
