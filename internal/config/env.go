package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/linegrep-cli/internal/core/ports"
)

// ProcessEnv looks variables up in the process environment
type ProcessEnv struct{}

// Lookup implements ports.EnvLookup
func (ProcessEnv) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnv is an in-memory environment
type MapEnv map[string]string

// Lookup implements ports.EnvLookup
func (m MapEnv) Lookup(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}

// LoadDotEnv reads a .env file into a MapEnv. A missing file yields an empty
// environment.
func LoadDotEnv(path string) (MapEnv, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MapEnv{}, nil
		}
		return nil, err
	}
	return MapEnv(values), nil
}

type layeredEnv []ports.EnvLookup

// Layered combines lookups; the first one that has the variable wins
func Layered(lookups ...ports.EnvLookup) ports.EnvLookup {
	return layeredEnv(lookups)
}

func (l layeredEnv) Lookup(name string) (string, bool) {
	for _, lookup := range l {
		if lookup == nil {
			continue
		}
		if value, ok := lookup.Lookup(name); ok {
			return value, true
		}
	}
	return "", false
}
