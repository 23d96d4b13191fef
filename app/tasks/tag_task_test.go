package tasks

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lysyi3m/rank-tags/app/table"
	"github.com/lysyi3m/rank-tags/app/tagger"
)

type stringSource struct {
	name    string
	content string
	err     error
}

func (s *stringSource) Name() string { return s.name }

func (s *stringSource) Open() (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.content)), nil
}

type recordingSink struct {
	presented *table.Table
	offered   *table.Table
	filename  string
	err       error
}

func (s *recordingSink) Present(tbl *table.Table) error {
	s.presented = tbl
	return s.err
}

func (s *recordingSink) OfferDownload(tbl *table.Table, filename string) error {
	s.offered = tbl
	s.filename = filename
	return nil
}

func newTestTagger() *tagger.Tagger {
	return tagger.NewTagger(tagger.NewClassifier(tagger.DefaultRules()))
}

const sampleCSV = "Content Type,Date,Target Keyword\n" +
	"New Post,03/05/2024,seo tips\n" +
	"Update Page,not-a-date,link building\n"

func TestTagTaskExecute(t *testing.T) {
	sink := &recordingSink{}
	task := NewTagTask(TaskTypeTagUpload, &stringSource{name: "keywords.csv", content: sampleCSV}, sink, newTestTagger(), "processed_tags.csv")

	err := Run(context.Background(), task)
	require.NoError(t, err)

	require.NotNil(t, sink.presented)
	assert.Same(t, sink.presented, sink.offered)
	assert.Equal(t, "processed_tags.csv", sink.filename)
	assert.Equal(t, []string{"seo tips, mar2024, New, Post"}, sink.presented.Column(tagger.ColumnFullTag))
	assert.Equal(t, tagger.Report{Total: 2, Kept: 1, Dropped: 1}, task.Report)

	assert.NotEmpty(t, task.GetID())
	assert.Equal(t, TaskTypeTagUpload, task.GetType())
	assert.Equal(t, "keywords.csv", task.GetSourceName())
	assert.NotNil(t, task.StartedAt)
}

func TestTagTaskUniqueIDs(t *testing.T) {
	source := &stringSource{name: "a.csv", content: sampleCSV}
	first := NewTagTask(TaskTypeTagFile, source, &recordingSink{}, newTestTagger(), "out.csv")
	second := NewTagTask(TaskTypeTagFile, source, &recordingSink{}, newTestTagger(), "out.csv")

	assert.NotEqual(t, first.GetID(), second.GetID())
}

func TestTagTaskMissingColumns(t *testing.T) {
	sink := &recordingSink{}
	source := &stringSource{name: "tags.csv", content: "Full Tag\n\"seo tips, mar2024, New, Post\"\n"}
	task := NewTagTask(TaskTypeTagFile, source, sink, newTestTagger(), "out.csv")

	err := Run(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tagger.ErrMissingColumn))
	assert.Nil(t, sink.presented)
	assert.Nil(t, sink.offered)
}

func TestTagTaskEmptyInput(t *testing.T) {
	task := NewTagTask(TaskTypeTagFile, &stringSource{name: "empty.csv"}, &recordingSink{}, newTestTagger(), "out.csv")

	err := Run(context.Background(), task)
	assert.True(t, errors.Is(err, table.ErrNoHeader))
}

func TestTagTaskSourceError(t *testing.T) {
	openErr := errors.New("boom")
	task := NewTagTask(TaskTypeTagFile, &stringSource{name: "x.csv", err: openErr}, &recordingSink{}, newTestTagger(), "out.csv")

	err := Run(context.Background(), task)
	assert.ErrorIs(t, err, openErr)
}

func TestTagTaskSinkError(t *testing.T) {
	sinkErr := errors.New("display unavailable")
	sink := &recordingSink{err: sinkErr}
	task := NewTagTask(TaskTypeTagFile, &stringSource{name: "x.csv", content: sampleCSV}, sink, newTestTagger(), "out.csv")

	err := Run(context.Background(), task)
	assert.ErrorIs(t, err, sinkErr)
	assert.Nil(t, sink.offered)
}

func TestTagTaskCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	task := NewTagTask(TaskTypeTagFile, &stringSource{name: "x.csv", content: sampleCSV}, sink, newTestTagger(), "out.csv")

	err := Run(ctx, task)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sink.presented)
}

func TestFileSourceAndSink(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(sampleCSV), 0644))

	outputDir := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(outputDir, 0755))

	var display bytes.Buffer
	source := NewFileSource(inputPath)
	sink := NewFileSink(&display, outputDir)

	task := NewTagTask(TaskTypeTagFile, source, sink, newTestTagger(), "processed_tags.csv")
	require.NoError(t, Run(context.Background(), task))

	assert.Equal(t, "input.csv", task.GetSourceName())
	assert.Contains(t, display.String(), "Processed Data:")
	assert.Contains(t, display.String(), "seo tips, mar2024, New, Post")

	written, err := os.ReadFile(filepath.Join(outputDir, "processed_tags.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Full Tag\n\"seo tips, mar2024, New, Post\"\n", string(written))
}

func TestFileSinkExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.csv")
	sink := NewFileSink(nil, path)

	tbl := table.New(tagger.ColumnFullTag)
	tbl.Append("kw, jan2024, New, Page")

	require.NoError(t, sink.Present(tbl))
	require.NoError(t, sink.OfferDownload(tbl, "ignored.csv"))

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Full Tag\n\"kw, jan2024, New, Page\"\n", string(written))
}

func TestFileSinkStdout(t *testing.T) {
	var stdout bytes.Buffer
	sink := NewFileSink(nil, "-")
	sink.stdout = &stdout

	tbl := table.New(tagger.ColumnFullTag)
	require.NoError(t, sink.OfferDownload(tbl, "processed_tags.csv"))
	assert.Equal(t, "Full Tag\n", stdout.String())
}

func TestFileSourceStdin(t *testing.T) {
	source := NewFileSource("-")
	source.stdin = strings.NewReader(sampleCSV)

	assert.Equal(t, "stdin", source.Name())

	reader, err := source.Open()
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(data))
}
