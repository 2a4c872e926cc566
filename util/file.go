package util

import (
	"os"
	"path/filepath"
)

// EnsureDir creates the directory for a file path if it does not exist yet.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if _, err := os.Stat(dir); err != nil {
		return os.MkdirAll(dir, os.ModePerm)
	}
	return nil
}

// WriteToFile writes the lines to the file, replacing any previous content.
func WriteToFile(savePath string, lines ...string) error {
	if err := EnsureDir(savePath); err != nil {
		return err
	}
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	return os.WriteFile(savePath, []byte(content), 0644)
}

// AppendToFile appends the lines to the file, creating it if needed.
func AppendToFile(savePath string, lines ...string) error {
	if err := EnsureDir(savePath); err != nil {
		return err
	}
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, l := range lines {
		if _, err = f.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return nil
}
