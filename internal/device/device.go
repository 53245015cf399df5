// ABOUTME: Stable per-device identifier for anonymous recommendation tracking
// ABOUTME: Generated once, persisted in the data directory, reused for the install's lifetime
package device

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const idFileName = "device_id"

// ID returns this device's stable identifier. The first call generates a
// random id and persists it; later calls return the stored value.
func ID(dataDir string) (string, error) {
	path := filepath.Join(dataDir, idFileName)

	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading device id: %w", err)
	}

	id := newID()

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
		return "", fmt.Errorf("persisting device id: %w", err)
	}

	return id, nil
}

// newID prefers a crypto-random UUID, falling back to time plus a
// pseudo-random suffix if the system's random source is unavailable.
func newID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("dev_%d_%09d", time.Now().UnixMilli(), rand.IntN(1_000_000_000))
}
