package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashImage identifies a target by its size and RGBA pixels, so the same
// picture shares cached runs whatever file name or format it was loaded from.
// The size is part of the hash because equal pixel buffers can have
// different shapes.
func HashImage(width, height int, pix []byte) string {
	h := sha256.New()
	var size [16]byte
	binary.BigEndian.PutUint64(size[0:8], uint64(width))
	binary.BigEndian.PutUint64(size[8:16], uint64(height))
	h.Write(size[:])
	h.Write(pix)
	return hex.EncodeToString(h.Sum(nil))
}

// hashKey returns "<prefix>:<sha256 of the JSON-encoded parts>". Key options
// are flat structs of scalars, so their encoding is stable between runs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
