package session

import "crypto/sha256"

// deriveKeys turns one secret into a 32-byte hash key and a 32-byte AES key.
func deriveKeys(secret string) [][]byte {
	hashKey := sha256.Sum256([]byte("hash:" + secret))
	blockKey := sha256.Sum256([]byte("block:" + secret))
	return [][]byte{hashKey[:], blockKey[:]}
}
