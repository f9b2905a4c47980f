// Package password implements one-way credential hashing with argon2id.
//
// Hashes are stored in PHC string format
// ($argon2id$v=19$m=...,t=...,p=...$salt$key) so the parameters travel with
// the hash and verification never depends on the current configuration.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const phcAlgorithm = "argon2id"

// ErrMalformedHash is returned when a stored hash cannot be parsed. Callers
// treat this as an internal failure, not as a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// Config holds argon2id cost parameters. Values below the enforced floors
// are rejected by New.
type Config struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultConfig returns parameters suitable for interactive logins.
func DefaultConfig() Config {
	return Config{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher derives and verifies argon2id hashes with a fixed configuration.
type Hasher struct {
	cfg Config
}

// New validates cfg and returns a Hasher.
func New(cfg Config) (*Hasher, error) {
	switch {
	case cfg.Memory < 8*1024:
		return nil, errors.New("password: memory must be >= 8192 KiB")
	case cfg.Time < 1:
		return nil, errors.New("password: time cost must be >= 1")
	case cfg.Parallelism < 1:
		return nil, errors.New("password: parallelism must be >= 1")
	case cfg.SaltLength < 16:
		return nil, errors.New("password: salt length must be >= 16")
	case cfg.KeyLength < 16:
		return nil, errors.New("password: key length must be >= 16")
	}
	return &Hasher{cfg: cfg}, nil
}

// Hash derives a salted argon2id hash of plaintext and encodes it as a PHC
// string. The plaintext is used byte-for-byte, without normalization.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.cfg.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("password: salt generation: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.cfg.Time, h.cfg.Memory, h.cfg.Parallelism, h.cfg.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		phcAlgorithm,
		argon2.Version,
		h.cfg.Memory,
		h.cfg.Time,
		h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext reproduces encoded. A wrong password is
// (false, nil); only an unparseable stored hash yields an error.
func (h *Hasher) Verify(plaintext, encoded string) (bool, error) {
	p, err := parse(encoded)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(plaintext), p.salt, p.time, p.memory, p.parallelism, uint32(len(p.key)))
	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

type parsed struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func parse(encoded string) (*parsed, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != phcAlgorithm {
		return nil, ErrMalformedHash
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, ErrMalformedHash
	}
	if v, err := strconv.Atoi(version); err != nil || v != argon2.Version {
		return nil, ErrMalformedHash
	}

	var p parsed
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, ErrMalformedHash
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, ErrMalformedHash
		}
		switch k {
		case "m":
			p.memory = uint32(n)
		case "t":
			p.time = uint32(n)
		case "p":
			if n > 255 {
				return nil, ErrMalformedHash
			}
			p.parallelism = uint8(n)
		default:
			return nil, ErrMalformedHash
		}
	}
	if p.memory == 0 || p.time == 0 || p.parallelism == 0 {
		return nil, ErrMalformedHash
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(p.salt) == 0 {
		return nil, ErrMalformedHash
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.key) == 0 {
		return nil, ErrMalformedHash
	}
	return &p, nil
}
