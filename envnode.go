package envnode

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

const (
	// FileName is the configuration file looked up inside the base directory
	FileName = ".env"
	// NoVariablesFound is offered as the only choice when the file yields no names
	NoVariablesFound = "NO_ENV_VARS_FOUND"

	noVariablesMessage = "No .env file found or no variables available"
)

// Node reads variables from a .env file and resolves the value of a selected one
type Node struct {
	Hooks Hooks
	// Path is the .env file.  It is fixed for the lifetime of the node.
	Path string
	// Env is the process-wide store merged into by Load.  Nil means the real process environment.
	Env Store
	// Readers are consulted, in order, before the file itself.  Nil means an Environment over Env.
	Readers []Reader

	loadOnce sync.Once
	loadErr  error
	loaded   bool
	loadMu   sync.RWMutex
}

// New returns a node reading <baseDir>/.env
func New(baseDir string) *Node {
	return &Node{
		Path: filepath.Join(baseDir, FileName),
	}
}

func (n *Node) store() Store {
	if n.Env == nil {
		return ProcessEnv{}
	}
	return n.Env
}

func (n *Node) readers() []Reader {
	if n.Readers == nil {
		return []Reader{&Environment{Store: n.store()}}
	}
	return n.Readers
}

// Load merges the file's pairs into Env.  Keys already present are left alone.  It runs at most
// once; later calls return the first call's result.  A missing file is not an error.  Lines that
// do not parse are skipped and the rest are still merged; the parse error is then returned.
func (n *Node) Load(ctx context.Context) error {
	n.loadOnce.Do(func() {
		n.loadErr = n.merge(ctx)
		n.loadMu.Lock()
		n.loaded = true
		n.loadMu.Unlock()
	})
	return n.loadErr
}

func (n *Node) merge(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(n.Path); os.IsNotExist(err) {
		return nil
	}
	vals, parseErr := godotenv.Read(n.Path)
	if parseErr != nil {
		n.Hooks.onError("Unable to parse .env file, merging line by line", n.Path, parseErr)
		var err error
		if vals, err = readLenient(n.Path); err != nil {
			n.Hooks.onError("Unable to read .env file", n.Path, err)
		}
	}
	s := n.store()
	for k, v := range vals {
		if _, exists := s.Lookup(k); exists {
			continue
		}
		if err := s.Set(k, v); err != nil {
			n.Hooks.onError("Unable to set merged variable", n.Path, err)
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	if parseErr != nil {
		return fmt.Errorf("merge %s: %w", n.Path, parseErr)
	}
	return nil
}

// readLenient parses path one line at a time, skipping lines godotenv rejects.  Later lines win.
// Whatever was parsed before a read error is still returned.
func readLenient(path string) (map[string]string, error) {
	vals := make(map[string]string)
	f, err := os.Open(path)
	if err != nil {
		return vals, err
	}
	defer func() {
		_ = f.Close()
	}()
	err = eachLine(f, func(_ int, line string) (bool, error) {
		parsed, lineErr := godotenv.Unmarshal(line)
		if lineErr != nil {
			return true, nil
		}
		for k, v := range parsed {
			if k != "" {
				vals[k] = v
			}
		}
		return true, nil
	})
	return vals, err
}

// VariableNames returns the names declared in the file, in file order and with duplicates kept.
// It never returns an empty slice: with nothing to offer it returns just NoVariablesFound.
func (n *Node) VariableNames(ctx context.Context) []string {
	res := scanFile(ctx, n.Path)
	if res.err != nil {
		n.Hooks.onError("Error reading .env file", n.Path, res.err)
		return []string{NoVariablesFound}
	}
	names := make([]string, 0, len(res.entries))
	for _, e := range res.entries {
		names = append(names, e.Name)
	}
	if len(names) == 0 {
		return []string{NoVariablesFound}
	}
	return names
}

// Value resolves name first through Readers and then by scanning the file, where the earliest
// declaration wins.  Unknown names resolve to "".  A file that exists but cannot be read resolves
// to a message describing the failure.
func (n *Node) Value(ctx context.Context, name string) string {
	if name == NoVariablesFound {
		return noVariablesMessage
	}
	for _, r := range n.readers() {
		b, err := r.Read(ctx, name)
		if err != nil {
			n.Hooks.onError("Unable to read from backing", name, err)
			continue
		}
		if len(b) != 0 {
			return string(b)
		}
	}

	f := &DotEnvFile{Path: n.Path}
	b, err := f.Read(ctx, name)
	if err != nil {
		n.Hooks.onError("Error reading .env file", n.Path, err)
		return fmt.Sprintf("Error reading environment variable: %v", err)
	}
	return string(b)
}

func (n *Node) isLoaded() bool {
	n.loadMu.RLock()
	defer n.loadMu.RUnlock()
	return n.loaded
}

// Var returns an expvar variable that shows the file path, whether Load has run and the
// variable names currently offered
func (n *Node) Var() expvar.Var {
	return expvar.Func(func() interface{} {
		return map[string]interface{}{
			"path":      n.Path,
			"loaded":    n.isLoaded(),
			"variables": n.VariableNames(context.Background()),
		}
	})
}
