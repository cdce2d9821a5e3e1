package repl

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHistorySize bounds the number of remembered lines.
const DefaultHistorySize = 1000

// History remembers entered lines, optionally persisted to a file.
type History struct {
	entries []string
	maxSize int
	file    string
}

// NewHistory creates a History. An empty file keeps history in memory only.
func NewHistory(file string, maxSize int) *History {
	if maxSize <= 0 {
		maxSize = DefaultHistorySize
	}
	return &History{maxSize: maxSize, file: file}
}

// Add records a line unless it carries a credential.
func (h *History) Add(line string) {
	if sensitive(line) {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[len(h.entries)-h.maxSize:]
	}
}

// Entries returns the lines, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Load reads the history file; a missing file is not an error.
func (h *History) Load() error {
	if h.file == "" {
		return nil
	}
	f, err := os.Open(h.file)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		h.Add(scanner.Text())
	}
	return scanner.Err()
}

// Save writes the history file with mode 0600.
func (h *History) Save() error {
	if h.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.file), 0o700); err != nil {
		return err
	}
	data := strings.Join(h.entries, "\n")
	if data != "" {
		data += "\n"
	}
	return os.WriteFile(h.file, []byte(data), 0o600)
}

func sensitive(line string) bool {
	l := strings.ToLower(line)
	return strings.Contains(l, "password") || strings.Contains(l, "encryption_key") || strings.Contains(l, "token")
}
