package checksum

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

func Sha256(bytes []byte) []byte {
	h := sha256.Sum256(bytes)
	return h[:]
}

// Sha256Hex is the lower case hex sha256 of bytes, as stored next to blobs.
func Sha256Hex(bytes []byte) string {
	return hex.EncodeToString(Sha256(bytes))
}

func Base64EncodeStr(bytes []byte) string {
	return base64.StdEncoding.EncodeToString(bytes)
}

// Base64DecodeStr decodes standard base64, with or without padding.
func Base64DecodeStr(input string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if strings.HasSuffix(input, "=") || len(input)%4 == 0 {
		return base64.StdEncoding.DecodeString(input)
	}
	return base64.RawStdEncoding.DecodeString(input)
}
