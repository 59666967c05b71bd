// Package generator scans a directory tree of SVG files and produces the
// icon catalog document served to the browsing UI.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/eringen/iconshelf/catalog"
)

// IgnoreFile is read from the source root when present; it uses gitignore
// syntax relative to the root.
const IgnoreFile = ".iconignore"

// ErrSourceMissing is returned when the source directory does not exist.
var ErrSourceMissing = errors.New("source directory not found")

// Config controls a generator run.
type Config struct {
	SourceDir string
	Output    string
	Logger    *log.Logger
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// CategoryCount is one line of the run summary.
type CategoryCount struct {
	Name  string
	Count int
}

// Summary reports what a run produced.
type Summary struct {
	Total      int
	Categories []CategoryCount
	Output     string
	Empty      bool
}

// Print writes a human-readable summary to w.
func (s Summary) Print(w io.Writer) {
	if s.Empty {
		fmt.Fprintf(w, "No SVG files found; wrote empty catalog to %s\n", s.Output)
		return
	}
	fmt.Fprintf(w, "Generated metadata for %d icons\n", s.Total)
	fmt.Fprintf(w, "Categories found (%d):\n", len(s.Categories))
	for _, c := range s.Categories {
		fmt.Fprintf(w, "  - %s: %d icons\n", c.Name, c.Count)
	}
	if s.Output != "" {
		fmt.Fprintf(w, "Metadata saved to: %s\n", s.Output)
	}
}

// Run builds the catalog from cfg.SourceDir and writes it to cfg.Output.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	cat, err := Build(ctx, cfg)
	if err != nil {
		return Summary{}, err
	}
	if err := Write(cfg.Output, cat); err != nil {
		return Summary{}, err
	}
	sum := Summarize(cat)
	sum.Output = cfg.Output
	return sum, nil
}

// Build walks cfg.SourceDir depth-first and groups every icon file by its
// parent directory. Categories are sorted by name; icons keep walk order,
// which filepath.WalkDir makes lexical.
func Build(ctx context.Context, cfg Config) (catalog.Catalog, error) {
	root := cfg.SourceDir
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return catalog.Catalog{}, fmt.Errorf("generator: %w: %s", ErrSourceMissing, root)
		}
		return catalog.Catalog{}, fmt.Errorf("generator: stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return catalog.Catalog{}, fmt.Errorf("generator: %s is not a directory", root)
	}

	gi := loadIgnore(root)
	groups := make(map[string][]catalog.Icon)

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Name()
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if strings.HasPrefix(name, ".") || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !IsIconFile(name) {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		category := filepath.Base(filepath.Dir(path))
		groups[category] = append(groups[category], NewIcon(category, name))
		return nil
	})
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("generator: walk %s: %w", root, err)
	}

	cat := catalog.Empty()
	for name, icons := range groups {
		cat.Categories = append(cat.Categories, catalog.Category{
			Name:        name,
			Description: catalog.Describe(name),
			Icons:       icons,
		})
	}
	cat.SortCategories()

	if cat.Len() == 0 {
		cfg.logger().Printf("generator: warning: no SVG files found in %s", root)
	}
	return cat, nil
}

func loadIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, IgnoreFile))
	if err != nil {
		return nil
	}
	return gi
}

// Summarize counts icons per category, sorted by category name.
func Summarize(cat catalog.Catalog) Summary {
	sum := Summary{Total: cat.Len(), Empty: cat.Len() == 0}
	for name, n := range cat.Counts() {
		sum.Categories = append(sum.Categories, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(sum.Categories, func(i, j int) bool {
		return sum.Categories[i].Name < sum.Categories[j].Name
	})
	return sum
}

// Write encodes cat as indented JSON at path, creating missing directories.
// The file is replaced atomically.
func Write(path string, cat catalog.Catalog) error {
	if cat.Categories == nil {
		cat = catalog.Empty()
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("generator: encode catalog: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("generator: create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".icons-metadata-*.json")
	if err != nil {
		return fmt.Errorf("generator: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("generator: write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("generator: write catalog: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("generator: write catalog: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("generator: write catalog: %w", err)
	}
	return nil
}
