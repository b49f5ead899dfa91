package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive contains no files.
var ErrEmptyArchive = errors.New("utils: archive is empty")

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip and .7z) are expected to hold the ROM as their first
// regular file, anything else that is not .gz is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	// try to assert the compression type from the file extension
	var decoder io.ReadCloser
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		var r *zip.Reader
		if r, err = zip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			return nil, fmt.Errorf("utils: reading %s: %w", filename, err)
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			decoder, err = f.Open()
			break
		}
	case ".7z":
		var r *sevenzip.Reader
		if r, err = sevenzip.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			return nil, fmt.Errorf("utils: reading %s: %w", filename, err)
		}
		for _, f := range r.File {
			if f.FileInfo().IsDir() {
				continue
			}
			decoder, err = f.Open()
			break
		}
	default:
		return data, nil
	}

	if err != nil {
		return nil, fmt.Errorf("utils: reading %s: %w", filename, err)
	}
	if decoder == nil {
		return nil, fmt.Errorf("utils: reading %s: %w", filename, ErrEmptyArchive)
	}
	defer decoder.Close()

	// read the decompressed data into a byte slice
	return io.ReadAll(decoder)
}
