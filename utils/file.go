// Package utils holds small filesystem helpers shared by the command
// binaries.
package utils

import "os"

// FileSizeMB returns the size of the file at path in megabytes, used by
// gamepadhidmon to report how large the diagnostics log has grown.
func FileSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(info.Size()) / (1024 * 1024), nil
}
