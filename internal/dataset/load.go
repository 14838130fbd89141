package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrMissingFile is returned when a required input file does not exist.
var ErrMissingFile = errors.New("input file not found")

// Source names one input file and the dataset kind it holds.
type Source struct {
	Kind Kind
	Name string
	Path string
}

// DefaultSources returns the three survey files under dir, in load order.
func DefaultSources(dir string) []Source {
	out := make([]Source, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, Source{Kind: k, Name: k.DisplayName(), Path: filepath.Join(dir, k.DefaultFile())})
	}
	return out
}

// Load reads every source into a new Registry. It is all-or-nothing: every path is checked
// before any parsing starts, and the first read error cancels the remaining reads.
func Load(ctx context.Context, sources []Source, opt ReadOptions) (*Registry, error) {
	for _, s := range sources {
		info, err := os.Stat(s.Path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s (%s)", ErrMissingFile, s.Path, s.Name)
			}
			return nil, eris.Wrapf(err, "stat %s", s.Path)
		}
		if info.IsDir() {
			return nil, eris.Errorf("%s (%s) is a directory", s.Path, s.Name)
		}
	}

	tables := make([]*Table, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := ReadFile(s.Name, s.Path, opt)
			if err != nil {
				return eris.Wrapf(err, "load %s", s.Name)
			}
			if t.Skipped > 0 {
				zap.L().Warn("skipped malformed lines",
					zap.String("table", s.Name),
					zap.String("path", s.Path),
					zap.Int("skipped", t.Skipped))
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(sources))
	for i, s := range sources {
		entries[i] = Entry{Name: s.Name, Kind: s.Kind, Table: tables[i]}
		zap.L().Debug("table loaded",
			zap.String("table", s.Name),
			zap.Int("rows", tables[i].Len()),
			zap.Int("columns", len(tables[i].Columns)))
	}
	return NewRegistry(entries...)
}
