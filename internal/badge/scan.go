package badge

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var skippedDirs = map[string]struct{}{
	"node_modules": {},
	"vendor":       {},
}

// CollectMarkdown walks root depth first and returns every Markdown file it
// finds, sorted, before any file is touched. Hidden directories and
// dependency folders are skipped.
func CollectMarkdown(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := skippedDirs[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
