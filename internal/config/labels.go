// Package config provides configuration file parsing for apriori.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Dir returns the apriori config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/apriori if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "apriori"), nil
}

// Labels maps SKUs to human-readable item names, e.g. 1 -> "butter".
type Labels struct {
	Names map[int64]string
}

// Name returns the label for sku, or the empty string if none is defined.
func (l *Labels) Name(sku int64) string {
	if l == nil {
		return ""
	}
	return l.Names[sku]
}

// LoadLabels reads the labels file at {dir}/labels. See LoadLabelsFile.
func LoadLabels(dir string) (*Labels, error) {
	return LoadLabelsFile(filepath.Join(dir, "labels"))
}

// LoadLabelsFile reads "SKU = name" lines from path. If the file does not
// exist, empty labels are returned without an error. Invalid or malformed
// lines are silently skipped.
func LoadLabelsFile(path string) (*Labels, error) {
	labels := &Labels{
		Names: make(map[int64]string),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return labels, nil
		}
		return labels, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		sku, err := strconv.ParseInt(strings.TrimSpace(line[:idx]), 10, 64)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(line[idx+1:])
		if name == "" {
			continue
		}

		labels.Names[sku] = name
	}

	if err := scanner.Err(); err != nil {
		return labels, err
	}

	return labels, nil
}
