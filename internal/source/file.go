package source

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileFetcher serves already-downloaded Syymmdd.csv files from a local
// directory, for offline operation and development against captured
// samples. Files keep their original Shift_JIS encoding.
type FileFetcher struct {
	Dir string
}

func NewFileFetcher(dir string) *FileFetcher {
	return &FileFetcher{Dir: dir}
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) Fetch(date time.Time) ([]byte, error) {
	path := filepath.Join(f.Dir, FileName(date))
	payload, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &StatusError{URL: path, Code: 404}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return payload, nil
}
