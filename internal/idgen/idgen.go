// internal/idgen/idgen.go
package idgen

import "crypto/rand"

const (
	charset   = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen = 8
)

// New returns prefix + "_" + 8 random lowercase-alphanumeric characters,
// e.g. "tnt_k29ax04q". Generated IDs double as API keys, so randomness
// comes from crypto/rand. Uniqueness is not guaranteed here; primary key
// constraints are the backstop.
func New(prefix string) string {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	out := make([]byte, 0, len(prefix)+1+suffixLen)
	out = append(out, prefix...)
	out = append(out, '_')
	for _, b := range buf {
		out = append(out, charset[int(b)%len(charset)])
	}
	return string(out)
}
