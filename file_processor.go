package tosql

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nao1215/tosql/domain/model"
)

// isDirectory reports whether path names an existing directory.
func isDirectory(path string) bool {
	if model.IsStdin(path) {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// collectFSFiles returns the files of fsys with a recognized extension in
// lexical order.
func collectFSFiles(fsys fs.FS) ([]string, error) {
	var files []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || model.DetectFormat(path) == model.FormatUnknown {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deduplicateCompressedFiles(files), nil
}

// deduplicateCompressedFiles drops a compressed file when its uncompressed
// version is also listed.
func deduplicateCompressedFiles(files []string) []string {
	plain := make(map[string]bool, len(files))
	for _, file := range files {
		if model.DetectCompressionType(file) == model.CompressionNone {
			plain[file] = true
		}
	}

	result := make([]string, 0, len(files))
	for _, file := range files {
		if model.DetectCompressionType(file) != model.CompressionNone && plain[model.RemoveCompressionExtension(file)] {
			continue
		}
		result = append(result, file)
	}
	return result
}

// tablesFromFS parses the recognized files of fsys.
func tablesFromFS(ctx context.Context, fsys fs.FS, hints model.ParseHints) ([]*model.Table, error) {
	if fsys == nil {
		return nil, errors.New("FS cannot be nil")
	}

	files, err := collectFSFiles(fsys)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no supported files found", ErrNoInputs)
	}

	tables := make([]*model.Table, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := inferFSFile(ctx, fsys, path, hints)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func inferFSFile(ctx context.Context, fsys fs.FS, path string, hints model.ParseHints) (_ *model.Table, err error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()
	return model.InferContext(ctx, model.RawInput{Name: path, Reader: file}, hints)
}
