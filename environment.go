package envnode

import (
	"context"
	"os"
)

// ProcessEnv is the real process environment
type ProcessEnv struct{}

var _ Store = ProcessEnv{}

// Lookup calls os.LookupEnv
func (ProcessEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Set calls os.Setenv
func (ProcessEnv) Set(key string, value string) error {
	return os.Setenv(key, value)
}

// Environment reads variables out of a Store, treating empty values as missing
type Environment struct {
	// Store defaults to ProcessEnv
	Store Store
}

var _ Reader = &Environment{}

func (p *Environment) Read(_ context.Context, key string) ([]byte, error) {
	s := p.Store
	if s == nil {
		s = ProcessEnv{}
	}
	val, _ := s.Lookup(key)
	if val == "" {
		return nil, nil
	}
	return []byte(val), nil
}
