package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion is mixed into every derived key. Bump it when the encoding of
// a cached layout or artifact changes so stale entries stop matching.
const keyVersion = 1

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the digest of the JSON encoding of v.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// derivedKey returns "kind:digest" over the key version and parts. parts
// must be JSON-encodable; key option structs always are.
func derivedKey(kind string, parts ...any) string {
	digest, err := HashJSON(append([]any{keyVersion}, parts...))
	if err != nil {
		panic("cache: unencodable key part: " + err.Error())
	}
	return kind + ":" + digest
}
