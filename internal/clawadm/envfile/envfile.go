// Package envfile resolves setup credentials from the process environment
// with a plain key=value file as fallback.
package envfile

import (
	"bufio"
	"os"
	"strings"
)

// Source resolves credential keys. The process environment wins when a
// variable is set and non-empty; otherwise the value parsed from the env
// file applies; otherwise the key resolves to "". Absence of a key is how
// features stay disabled, so lookups never fail.
type Source struct {
	fileVars map[string]string
}

// Load parses the env file at path. The file is optional: a missing file
// yields a Source backed by the environment alone. The format is strictly
// line oriented: blank lines and lines starting with "#" are skipped, the
// first "=" splits key from value, both sides are trimmed, and lines
// without "=" are ignored. No quoting or escape handling.
func Load(path string) (*Source, error) {
	s := &Source{fileVars: map[string]string{}}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		s.fileVars[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return s, err
	}
	return s, nil
}

// Get resolves key per the environment-over-file precedence rule.
func (s *Source) Get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.fileVars[key]
}

// Len reports how many variables the env file contributed.
func (s *Source) Len() int {
	return len(s.fileVars)
}
