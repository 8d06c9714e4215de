package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// APIToken returns the bearer token protecting the HTTP API. The
// LUMINA_API_TOKEN environment variable wins; otherwise the token is read
// from <dataDir>/api_token, generated on first use.
func APIToken(dataDir string) (string, error) {
	if t := os.Getenv("LUMINA_API_TOKEN"); t != "" {
		return t, nil
	}

	path := filepath.Join(dataDir, "api_token")
	if data, err := os.ReadFile(path); err == nil {
		t := strings.TrimSpace(string(data))
		if t != "" {
			return t, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading API token: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating API token: %w", err)
	}
	t := hex.EncodeToString(raw)

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(t+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("persisting API token: %w", err)
	}
	return t, nil
}
