package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"streamchart/internal/models"
)

// maxLineBytes bounds a single log line; anything longer aborts the scan.
const maxLineBytes = 1 << 20

// LineScanner yields raw lines from a log file in a single forward pass.
// Gzip-compressed files are decompressed transparently.
type LineScanner struct {
	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
}

// Open prepares a scanner over the file at path.
func Open(path string) (*LineScanner, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrInputUnreadable, err)
	}

	ls := &LineScanner{file: file}

	buffered := bufio.NewReader(file)
	if isGzip(buffered) {
		gz, err := gzip.NewReader(buffered)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("%w: %v", models.ErrInputUnreadable, err)
		}
		ls.gz = gz
		ls.scanner = bufio.NewScanner(gz)
	} else {
		ls.scanner = bufio.NewScanner(buffered)
	}
	ls.scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return ls, nil
}

// isGzip peeks at the first two bytes for the gzip magic number.
func isGzip(r *bufio.Reader) bool {
	magic, err := r.Peek(2)
	if err != nil {
		return false
	}
	return magic[0] == 0x1f && magic[1] == 0x8b
}

// Scan advances to the next line. It returns false at end of input or on error.
func (ls *LineScanner) Scan() bool {
	return ls.scanner.Scan()
}

// Line returns the current line without its trailing newline.
func (ls *LineScanner) Line() string {
	return ls.scanner.Text()
}

// Err reports any error encountered while scanning, excluding io.EOF.
func (ls *LineScanner) Err() error {
	if err := ls.scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInputUnreadable, err)
	}
	return nil
}

// Close releases the underlying file handle.
func (ls *LineScanner) Close() error {
	var errs []error
	if ls.gz != nil {
		if err := ls.gz.Close(); err != nil && !errors.Is(err, io.EOF) {
			errs = append(errs, err)
		}
	}
	if err := ls.file.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
