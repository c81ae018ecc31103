package envnode

import "context"

// Reader can get a []byte value for a variable name
type Reader interface {
	// Read should lookup a key inside the source.  A nil or empty result means the source does
	// not have a value and the next source in the chain is tried.  An error skips this source.
	Read(ctx context.Context, key string) ([]byte, error)
}

// Store is a process-wide key/value environment
type Store interface {
	Lookup(key string) (string, bool)
	Set(key string, value string) error
}
