// Package backup keeps rotating copies of the feed database.
//
// Copies sit next to the database and are named <db>.bak.1, <db>.bak.2, ...
// where 1 is the most recent. "timeago init --force" takes one before it
// replaces an existing database.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultKeep is the number of copies kept when none is configured.
const DefaultKeep = 3

// Rotator creates and rotates database copies.
type Rotator struct {
	dbPath string
	dir    string
	prefix string
	keep   int
}

// NewRotator creates a Rotator for the database at dbPath keeping at most
// keep copies.
func NewRotator(dbPath string, keep int) *Rotator {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Rotator{
		dbPath: dbPath,
		dir:    filepath.Dir(dbPath),
		prefix: filepath.Base(dbPath) + ".bak.",
		keep:   keep,
	}
}

// Backup copies the database to <db>.bak.1 after shifting older copies.
// Returns an empty path if there is no database to copy.
func (r *Rotator) Backup() (string, error) {
	if _, err := os.Stat(r.dbPath); os.IsNotExist(err) {
		return "", nil
	}

	if err := r.rotate(); err != nil {
		return "", fmt.Errorf("rotating backups: %w", err)
	}

	path := filepath.Join(r.dir, r.prefix+"1")
	if err := copyFile(r.dbPath, path); err != nil {
		return "", fmt.Errorf("copying database: %w", err)
	}
	return path, nil
}

// List returns existing copies, newest first.
func (r *Rotator) List() ([]string, error) {
	copies, err := r.list()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(copies))
	for i, c := range copies {
		paths[i] = c.path
	}
	return paths, nil
}

type backupFile struct {
	path   string
	number int
}

func (r *Rotator) list() ([]backupFile, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var copies []backupFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, r.prefix) {
			continue
		}
		num, err := strconv.Atoi(strings.TrimPrefix(name, r.prefix))
		if err != nil || num < 1 {
			continue
		}
		copies = append(copies, backupFile{path: filepath.Join(r.dir, name), number: num})
	}

	sort.Slice(copies, func(i, j int) bool {
		return copies[i].number < copies[j].number
	})
	return copies, nil
}

// rotate shifts bak.N to bak.N+1, oldest first, and deletes copies beyond keep.
func (r *Rotator) rotate() error {
	copies, err := r.list()
	if err != nil {
		return err
	}

	for i := len(copies) - 1; i >= 0; i-- {
		c := copies[i]
		next := c.number + 1
		if next > r.keep {
			if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("deleting old backup %s: %w", c.path, err)
			}
			continue
		}
		dst := filepath.Join(r.dir, r.prefix+strconv.Itoa(next))
		if err := os.Rename(c.path, dst); err != nil {
			return fmt.Errorf("renaming backup %s to %s: %w", c.path, dst, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return out.Sync()
}
