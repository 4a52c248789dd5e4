//    MultiGlossServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ldr

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/MultiGlossServer/internal/gen"
	"github.com/e-gun/MultiGlossServer/internal/str"
	"golang.org/x/sync/errgroup"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

var (
	ErrFormat    = errors.New("unknown document format")
	ErrDuplicate = errors.New("duplicate document name")
)

// DocName - "glosses/odyssey.mg" ==> "odyssey"
func DocName(path string) string {
	b := filepath.Base(path)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// LoadFile - pick the loader by extension
func LoadFile(path string) (*str.Document, error) {
	var load func(f *os.File, name string) (*str.Document, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		load = func(f *os.File, n string) (*str.Document, error) { return LoadJSON(f, n) }
	case ".yaml", ".yml":
		load = func(f *os.File, n string) (*str.Document, error) { return LoadYAML(f, n) }
	case ".mg", ".tsv":
		load = func(f *os.File, n string) (*str.Document, error) { return LoadTSV(f, n) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := load(f, DocName(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// DocFiles - the loadable files directly inside dir, sorted; a missing dir is not an error
func DocFiles(dir string) ([]string, error) {
	ee, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var found []string
	for _, e := range ee {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml", ".mg", ".tsv":
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(found)
	return found, nil
}

// LoadAll - every document the configuration names: files, the document directory, and the stores.
// Files load concurrently; the result is prepared and sorted by name.
func LoadAll(ctx context.Context, cfg str.CurrentConfiguration) ([]*str.Document, error) {
	paths := append([]string{}, cfg.Docs...)
	if cfg.DocDir != "" {
		found, err := DocFiles(cfg.DocDir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	paths = gen.Unique(paths)

	var (
		files  = make([]*str.Document, len(paths))
		stored [2][]*str.Document
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU() + 2)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := LoadFile(p)
			if err != nil {
				return err
			}
			Prepare(d)
			files[i] = d
			return nil
		})
	}

	if cfg.SQLiteDB != "" {
		g.Go(func() error {
			db, err := OpenSQLite(cfg.SQLiteDB)
			if err != nil {
				return err
			}
			defer db.Close()
			stored[0], err = LoadSQLite(gctx, db)
			return err
		})
	}

	if cfg.PGDocs {
		g.Go(func() error {
			pool, err := OpenPG(gctx, cfg.PGLogin)
			if err != nil {
				return err
			}
			defer pool.Close()
			stored[1], err = LoadPG(gctx, pool)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sd := range stored {
		for _, d := range sd {
			Prepare(d)
		}
	}

	all := append(append(files, stored[0]...), stored[1]...)
	seen := make(map[string]bool, len(all))
	for _, d := range all {
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicate, d.Name)
		}
		seen[d.Name] = true
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}
