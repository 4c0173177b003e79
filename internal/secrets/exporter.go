// Package secrets builds the environment handed to freshly deployed function
// packages: per-tool bearer tokens generated for the run plus externally
// supplied secrets copied through verbatim.
//
// Generated values never appear in log output.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultTokenBytes is the entropy of generated bearer tokens.
const DefaultTokenBytes = 16

// Token returns a cryptographically random URL-safe token with n bytes of
// entropy.
func Token(n int) (string, error) {
	if n < DefaultTokenBytes {
		n = DefaultTokenBytes
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Bundle produces the key-value environment for a function package: a fresh
// random token for each name in tokenNames, and every passThrough entry
// copied verbatim. Two calls produce different token values but identical
// copied-through values.
func Bundle(tokenNames []string, passThrough map[string]string) (map[string]string, error) {
	env := make(map[string]string, len(tokenNames)+len(passThrough))
	for _, name := range tokenNames {
		token, err := Token(DefaultTokenBytes)
		if err != nil {
			return nil, err
		}
		env[name] = token
	}
	for k, v := range passThrough {
		env[k] = v
	}
	return env, nil
}

// StageDir copies the function package directory into a fresh temporary
// directory so the generated .env never lands in the source tree. The caller
// removes the returned directory when deployment finishes.
func StageDir(src string) (string, error) {
	tmp, err := os.MkdirTemp("", "agent-tools-*")
	if err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	dest := filepath.Join(tmp, filepath.Base(src))
	if err := os.CopyFS(dest, os.DirFS(src)); err != nil {
		_ = os.RemoveAll(tmp)
		return "", fmt.Errorf("failed to stage %s: %w", src, err)
	}
	return dest, nil
}

// WriteEnvFile writes the bundle as a .env file in the staged package
// directory.
func WriteEnvFile(dir string, env map[string]string) error {
	path := filepath.Join(dir, ".env")
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}
	return nil
}
