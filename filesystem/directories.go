// Package filesystem has helpers for data directory paths.
package filesystem

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// OwnerReadWriteExec is the mode of directories created for the node data.
const OwnerReadWriteExec = 0o700

// GetUserHomeDirectory returns the user home directory if one is set.
func GetUserHomeDirectory() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// GetCanonicalPath returns an os-specific full path:
// a leading ~ is replaced with the user's home dir, env vars are expanded
// and the result is cleaned.
func GetCanonicalPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := GetUserHomeDirectory(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

// ExistOrCreate creates the directory at path if it doesn't exist.
func ExistOrCreate(path string) error {
	if err := os.MkdirAll(path, OwnerReadWriteExec); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}
