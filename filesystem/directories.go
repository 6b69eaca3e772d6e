// Package filesystem resolves and creates node directories.
package filesystem

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// OwnerReadWriteExec is the mode of directories created by the node.
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

// GetCanonicalPath replaces leading ~ with the home directory, expands
// environment variables and cleans the path.
func GetCanonicalPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := GetUserHomeDirectory(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

// GetFullDirectoryPath returns canonical path of the directory and creates it if it doesn't exist.
func GetFullDirectoryPath(name string) (string, error) {
	path := GetCanonicalPath(name)
	return path, os.MkdirAll(path, OwnerReadWriteExec)
}
