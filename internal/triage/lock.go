package triage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type runLock struct {
	path string
	lock *flock.Flock
}

// lockPath keys the lock file by the absolute input path.
func lockPath(dir, input string) string {
	sum := sha256.Sum256([]byte(input))
	return filepath.Join(dir, hex.EncodeToString(sum[:12])+".lock")
}

func acquireRunLock(dir, input string) (*runLock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrap(ErrFilesystem, "create lock directory", dir, err)
	}
	path := lockPath(dir, input)
	l := flock.New(path)
	ok, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrRunInProgress, path)
	}
	return &runLock{path: path, lock: l}, nil
}

func (l *runLock) release() error {
	if l == nil {
		return nil
	}
	return l.lock.Unlock()
}
