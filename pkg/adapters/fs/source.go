package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/auditnotes/pkg/core"
)

// DefaultExclude keeps dependency trees out of scans.
var DefaultExclude = []string{"**/node_modules/**"}

// SourceConfig holds the configuration for the filesystem source.
type SourceConfig struct {
	Root       string
	Extensions []string // without leading dot, case-insensitive
	Exclude    []string // doublestar patterns matched against slash-separated relative paths
	Ignore     []string // exact relative paths never offered (e.g. the checklist itself)
	Logger     *slog.Logger
}

// Source implements core.Source by walking a project directory.
type Source struct {
	root    string
	exts    map[string]bool
	exclude []string
	ignore  map[string]bool
	logger  *slog.Logger
}

// NewSource validates the configuration and creates a Source.
func NewSource(cfg SourceConfig) (*Source, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	s := &Source{
		root:   root,
		exts:   make(map[string]bool),
		ignore: make(map[string]bool),
		logger: cfg.Logger,
	}
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			s.exts["."+ext] = true
		}
	}
	for _, p := range cfg.Exclude {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
		s.exclude = append(s.exclude, p)
	}
	for _, p := range cfg.Ignore {
		s.ignore[filepath.ToSlash(p)] = true
	}
	return s, nil
}

// Root returns the absolute project root.
func (s *Source) Root() string {
	return s.root
}

// List walks the root in lexical order and returns the files to scan.
func (s *Source) List(ctx context.Context) ([]core.SourceFile, error) {
	var files []core.SourceFile

	err := filepath.WalkDir(s.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			if s.logger != nil {
				s.logger.Warn("skipping unreadable path", "path", path, "error", err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := s.rel(path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.root && (d.Name() == ".git" || s.prunes(rel)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.accepts(rel) {
			return nil
		}
		files = append(files, core.SourceFile{Identity: path, Display: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Debug("source files listed", "root", s.root, "count", len(files))
	}
	return files, nil
}

// Read returns the text of a file.
func (s *Source) Read(ctx context.Context, identity string) (string, error) {
	data, err := os.ReadFile(identity)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Matches reports whether an absolute path would be offered by List.
func (s *Source) Matches(path string) bool {
	rel, err := s.rel(path)
	if err != nil || strings.HasPrefix(rel, "../") {
		return false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".git" {
			return false
		}
	}
	dir := rel
	for {
		dir = pathDir(dir)
		if dir == "" {
			break
		}
		if s.prunes(dir) {
			return false
		}
	}
	return s.accepts(rel)
}

func (s *Source) rel(path string) (string, error) {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// accepts checks a relative file path against extensions, excludes and ignores.
func (s *Source) accepts(rel string) bool {
	if s.ignore[rel] {
		return false
	}
	if !s.exts[strings.ToLower(filepath.Ext(rel))] {
		return false
	}
	for _, p := range s.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	return true
}

// prunes reports whether a directory is excluded as a whole, which is the case
// for patterns of the form "<dir pattern>/**".
func (s *Source) prunes(relDir string) bool {
	for _, p := range s.exclude {
		prefix, ok := strings.CutSuffix(p, "/**")
		if !ok {
			continue
		}
		if match, _ := doublestar.Match(prefix, relDir); match {
			return true
		}
	}
	return false
}

func pathDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}
