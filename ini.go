package envnode

import (
	"context"
	"os"

	ini "github.com/vaughan0/go-ini"
)

// IniFile reads variables out of one section of an INI file.  The empty Section is the keys
// declared before any [section] header.  The file is read again on every call.
type IniFile struct {
	Path    string
	Section string
}

var _ Reader = &IniFile{}

func (p *IniFile) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := ini.LoadFile(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	val, ok := file.Get(p.Section, key)
	if !ok {
		return nil, nil
	}
	return []byte(val), nil
}
