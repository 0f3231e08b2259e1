package ingest

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// formatByExt maps file extensions to document formats. Files with other
// extensions are ignored by the loader.
var formatByExt = map[string]Format{
	".xml": FormatStructuredLaw,
	".md":  FormatMarkdown,
	".txt": FormatPageText,
}

// LoadDir walks a directory tree and loads every recognized source
// document. Unreadable files are logged and skipped; the walk continues
// with the remaining documents.
func LoadDir(root string) ([]Document, error) {
	logger := slog.Default().With("component", "loader")

	var docs []Document
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		format, ok := formatByExt[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable document", "path", path, "err", err)
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}

		docs = append(docs, Document{
			Raw:    raw,
			Format: format,
			Path:   filepath.ToSlash(rel),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("loaded source documents", "root", root, "count", len(docs))
	return docs, nil
}
