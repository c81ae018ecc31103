package envnode

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned when a .env line is not valid UTF-8
var ErrInvalidEncoding = errors.New("invalid UTF-8 in .env file")

// Entry is one KEY=VALUE declaration with the value trimmed and unquoted
type Entry struct {
	Name  string
	Value string
}

type scanResult struct {
	entries []Entry
	err     error
}

// scanFile reads every declaration in path.  A missing file has no declarations and no error.
func scanFile(ctx context.Context, path string) scanResult {
	var entries []Entry
	err := scan(ctx, path, func(e Entry) bool {
		entries = append(entries, e)
		return true
	})
	if err != nil {
		return scanResult{err: err}
	}
	return scanResult{entries: entries}
}

// scan calls fn with each declaration in path, in file order, until fn returns false.  Lines after
// that are never read.
func scan(ctx context.Context, path string, fn func(Entry) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return eachLine(f, func(num int, raw string) (bool, error) {
		if !utf8.ValidString(raw) {
			return false, fmt.Errorf("line %d: %w", num, ErrInvalidEncoding)
		}
		e, ok := parseLine(raw)
		if !ok {
			return true, nil
		}
		return fn(e), nil
	})
}

// eachLine calls fn with every line of r, newline included, until fn returns false or an error.
// Lines have no length limit.
func eachLine(r io.Reader, fn func(num int, line string) (bool, error)) error {
	br := bufio.NewReader(r)
	for num := 1; ; num++ {
		line, err := br.ReadString('\n')
		if line != "" {
			more, fnErr := fn(num, line)
			if fnErr != nil {
				return fnErr
			}
			if !more {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func parseLine(raw string) (Entry, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}
	k, v, ok := strings.Cut(line, "=")
	if !ok {
		return Entry{}, false
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return Entry{}, false
	}
	return Entry{Name: k, Value: unquote(strings.TrimSpace(v))}, true
}

// unquote strips one matching pair of surrounding double or single quotes
func unquote(v string) string {
	for _, q := range []string{`"`, `'`} {
		if !strings.HasPrefix(v, q) || !strings.HasSuffix(v, q) {
			continue
		}
		if len(v) < 2 {
			return ""
		}
		return v[1 : len(v)-1]
	}
	return v
}

// DotEnvFile is a Reader over a .env file.  The file is read again on every call.
type DotEnvFile struct {
	Path string
}

var _ Reader = &DotEnvFile{}

// Read returns the first declaration of key, or nil if the file or key is missing.  Reading stops
// at the first declaration.
func (d *DotEnvFile) Read(ctx context.Context, key string) ([]byte, error) {
	var val []byte
	err := scan(ctx, d.Path, func(e Entry) bool {
		if e.Name != key {
			return true
		}
		val = []byte(e.Value)
		return false
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}
