package confloader

import (
	"errors"
	"os"

	"github.com/knadh/koanf/maps"
)

var errReadBytes = errors.New("confloader: map provider has no byte form")

// mapProvider feeds dotted keys to koanf.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errReadBytes
}

func (m mapProvider) Read() (map[string]any, error) {
	return maps.Unflatten(m, "."), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
