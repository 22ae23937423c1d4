package tracklist

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FromReader reads one filename per line, trimmed, skipping blank lines.
// Line order is preserved.
func FromReader(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var names []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read track list: %w", err)
	}

	return names, nil
}

// FromDirectory walks root and returns the base names of files whose
// slash-normalized path relative to root matches any of the doublestar
// patterns. The result is sorted for a deterministic order.
func FromDirectory(root string, patterns []string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range patterns {
			ok, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("bad audio pattern %q: %w", pattern, err)
			}
			if ok {
				names = append(names, d.Name())
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}

	sort.Strings(names)

	return names, nil
}

// FromM3U reads an m3u playlist file and returns the base filename of every
// entry, in file order. Comment and directive lines start with '#' and are
// skipped.
func FromM3U(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	var names []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, filepath.Base(filepath.FromSlash(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read playlist file %s: %w", path, err)
	}

	return names, nil
}
