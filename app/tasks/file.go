package tasks

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/lysyi3m/rank-tags/app/table"
)

// FileSource reads a CSV file from disk, or standard input when Path is "-".
type FileSource struct {
	Path  string
	stdin io.Reader
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, stdin: os.Stdin}
}

func (s *FileSource) Name() string {
	if s.Path == "-" {
		return "stdin"
	}
	return filepath.Base(s.Path)
}

func (s *FileSource) Open() (io.ReadCloser, error) {
	if s.Path == "-" {
		return io.NopCloser(s.stdin), nil
	}
	return os.Open(s.Path)
}

// FileSink prints the table to display and writes the CSV download to output.
// An empty or "-" output writes the CSV to stdout instead; an existing
// directory receives a file named after the offered download.
type FileSink struct {
	display io.Writer
	stdout  io.Writer
	output  string
}

func NewFileSink(display io.Writer, output string) *FileSink {
	return &FileSink{display: display, stdout: os.Stdout, output: output}
}

func (s *FileSink) Present(tbl *table.Table) error {
	if s.display == nil {
		return nil
	}

	w := tabwriter.NewWriter(s.display, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Processed Data:")
	fmt.Fprintf(w, "\t%s\n", strings.Join(tbl.Header, "\t"))
	for i, row := range tbl.Rows {
		fmt.Fprintf(w, "%d\t%s\n", i, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func (s *FileSink) OfferDownload(tbl *table.Table, filename string) error {
	if s.output == "" || s.output == "-" {
		return table.Write(s.stdout, tbl)
	}

	path := s.output
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, filename)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := table.Write(file, tbl); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	slog.Info("Download written", "path", path, "rows", tbl.Len())
	return nil
}
