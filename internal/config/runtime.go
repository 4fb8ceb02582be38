package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath returns the runtime directory holding the optional .env file.
// Relative values are resolved against the user's home directory.
func GetRuntimePath() string {
	path := os.Getenv("REPLYBOT_RUNTIME_PATH")
	if path == "" {
		path = ".replybot"
	}

	if !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, path)
	}
	return path
}
