// Package fileutil provides file I/O helpers for the converter CLI:
// stdin/stdout streaming via the conventional "-" path and transparent
// xz decompression of compressed PAGE exports.
package fileutil

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/PageTEI/core/errors"
)

// StdStream is the path meaning stdin or stdout.
const StdStream = "-"

// ReadInput reads the whole input document. A path of "-" reads stdin;
// files ending in .xz are decompressed transparently.
func ReadInput(path string) ([]byte, error) {
	if path == StdStream {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.NewIO("read", "stdin", err)
		}
		return data, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.NewIO("decompress", path, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return data, nil
}

// WriteOutput writes the converted document. A path of "-" writes stdout.
func WriteOutput(path string, data []byte) error {
	if path == StdStream {
		if _, err := os.Stdout.Write(data); err != nil {
			return errors.NewIO("write", "stdout", err)
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewIO("create directory", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// CopyFile copies src to dst, creating parent directories as needed.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.NewIO("open", src, err)
	}
	defer in.Close()

	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewIO("create directory", dir, err)
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.NewIO("create", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.NewIO("copy", dst, err)
	}
	return out.Close()
}
