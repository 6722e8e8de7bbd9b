package pagefile

import (
	"errors"
	"fmt"
	"os"

	"github.com/bietkhonhungvandi212/pool-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/pool-db/internal/utils"
)

/**
* This module exposes a page file as an indexable sequence of fixed-size
* blocks. The file must already be sized to contain every block that is read
* or written; growing the file is not part of the contract.
**/
type Manager struct {
	File     *os.File
	Path     string
	numPages int64
}

// Exists reports whether a page file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Create makes a new page file sized to hold initialPages zeroed pages.
// An existing file at path is truncated.
func Create(path string, initialPages int) error {
	if initialPages <= 0 {
		return util.ErrInvalidInitialPages
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("create page file: %w", err)
	}

	if err := f.Truncate(page.Offset(page.Number(initialPages))); err != nil {
		f.Close()
		return fmt.Errorf("size page file: %w", err)
	}

	return f.Close()
}

// Open opens an existing page file. The file must exist and its size must be
// an exact multiple of the page size.
func Open(path string) (*Manager, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o666)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, util.ErrFileNotFound
		}
		return nil, fmt.Errorf("open page file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat page file: %w", err)
	}
	if info.Size()%page.Size != 0 {
		f.Close()
		return nil, util.ErrInvalidFileSize
	}

	return &Manager{File: f, Path: path, numPages: info.Size() / page.Size}, nil
}

// NumPages returns the number of blocks the file currently holds.
func (m *Manager) NumPages() int64 {
	return m.numPages
}

/* READ BLOCK */
func (m *Manager) ReadBlock(n page.Number, buf []byte) error {
	if len(buf) != page.Size {
		return util.ErrInvalidPageSize
	}
	if n < 0 || int64(n) >= m.numPages {
		return util.ErrPageOutOfBounds
	}

	if _, err := m.File.ReadAt(buf, page.Offset(n)); err != nil {
		return fmt.Errorf("read block %d: %w", n, err)
	}
	return nil
}

/* WRITE BLOCK */
func (m *Manager) WriteBlock(n page.Number, buf []byte) error {
	if len(buf) != page.Size {
		return util.ErrInvalidPageSize
	}
	if n < 0 || int64(n) >= m.numPages {
		return util.ErrPageOutOfBounds
	}

	if _, err := m.File.WriteAt(buf, page.Offset(n)); err != nil {
		return fmt.Errorf("write block %d: %w", n, err)
	}
	return nil
}

// Sync flushes buffered writes to stable storage.
func (m *Manager) Sync() error {
	if m.File == nil {
		return nil
	}
	return m.File.Sync()
}

/**
* CLOSE FUNCTION
**/
func (m *Manager) Close() error {
	if m == nil || m.File == nil {
		return nil // Idempotent
	}

	var err error
	if e := m.File.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync file: %w", e))
	}
	if e := m.File.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close file: %w", e))
	}
	m.File = nil
	return err
}
