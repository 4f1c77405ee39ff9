// Package password hashes and verifies stored credentials with argon2id.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// params are the argon2id cost settings baked into new hashes. Verify
// reads the costs back out of the encoded hash, so these can be raised
// later without invalidating existing credentials.
type params struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

var hashParams = params{
	time:    1,
	memory:  64 * 1024,
	threads: 4,
	keyLen:  32,
	saltLen: 16,
}

const encodedFormat = "$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s"

// Hash returns the Argon2id hash used for stored credentials.
func Hash(password string) (string, error) {
	salt := make([]byte, hashParams.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, hashParams.time, hashParams.memory, hashParams.threads, hashParams.keyLen)

	saltB64 := base64.RawStdEncoding.EncodeToString(salt)
	hashB64 := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf(encodedFormat, hashParams.memory, hashParams.time, hashParams.threads, saltB64, hashB64), nil
}

// Verify checks whether a password matches the encoded Argon2id hash.
// Malformed encodings verify as false, never as an error the caller
// could confuse with a wrong password.
func Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false
	}

	costs, ok := parseCosts(parts[3])
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	check := argon2.IDKey([]byte(password), salt, costs.time, costs.memory, costs.threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, check) == 1
}

// parseCosts reads the "m=...,t=...,p=..." segment of an encoded hash.
func parseCosts(segment string) (params, bool) {
	fields := strings.Split(segment, ",")
	if len(fields) != 3 {
		return params{}, false
	}

	m, ok := strings.CutPrefix(fields[0], "m=")
	if !ok {
		return params{}, false
	}
	t, ok := strings.CutPrefix(fields[1], "t=")
	if !ok {
		return params{}, false
	}
	p, ok := strings.CutPrefix(fields[2], "p=")
	if !ok {
		return params{}, false
	}

	m64, err := strconv.ParseUint(m, 10, 32)
	if err != nil {
		return params{}, false
	}
	t64, err := strconv.ParseUint(t, 10, 32)
	if err != nil {
		return params{}, false
	}
	p64, err := strconv.ParseUint(p, 10, 8)
	if err != nil {
		return params{}, false
	}

	return params{
		memory:  uint32(m64),
		time:    uint32(t64),
		threads: uint8(p64),
	}, true
}
