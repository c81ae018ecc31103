package envnode

import "fmt"

// A BackingLoader should return a Reader that can be put in front of a node's .env file
type BackingLoader interface {
	Get() (Reader, error)
}

// BackingLoaderFunc can wrap a function to turn it into a BackingLoader
type BackingLoaderFunc func() (Reader, error)

// Get a Reader
func (f BackingLoaderFunc) Get() (Reader, error) {
	return f()
}

// FromLoaders creates a node reading path whose Readers are every loader that loads without error.
// onFail, if set, is called for each loader that fails.
func FromLoaders(path string, loaders []BackingLoader, onFail func(err error, loader BackingLoader)) *Node {
	readers := make([]Reader, 0, len(loaders))
	for _, l := range loaders {
		r, err := l.Get()
		if err != nil {
			if onFail != nil {
				onFail(err, l)
			}
			continue
		}
		readers = append(readers, r)
	}
	return &Node{
		Path:    path,
		Readers: readers,
	}
}

// MemLoader returns an empty Mem
func MemLoader() BackingLoader {
	return BackingLoaderFunc(func() (Reader, error) {
		return &Mem{}, nil
	})
}

// EnvLoader reads from store, or the process environment if store is nil
func EnvLoader(store Store) BackingLoader {
	return BackingLoaderFunc(func() (Reader, error) {
		return &Environment{Store: store}, nil
	})
}

// IniLoader reads from one section of the INI file at path.  An empty path is rejected.
func IniLoader(path string, section string) BackingLoader {
	return BackingLoaderFunc(func() (Reader, error) {
		if path == "" {
			return nil, fmt.Errorf("ini loader for section %q: empty path", section)
		}
		return &IniFile{Path: path, Section: section}, nil
	})
}
