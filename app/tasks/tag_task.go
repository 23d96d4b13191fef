package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/rank-tags/app/table"
	"github.com/lysyi3m/rank-tags/app/tagger"
)

var _ TaskInterface = (*TagTask)(nil)

type TagTask struct {
	Task
	Report tagger.Report

	source       Source
	sink         Sink
	tagger       *tagger.Tagger
	downloadName string
}

func NewTagTask(taskType TaskType, source Source, sink Sink, rowTagger *tagger.Tagger, downloadName string) *TagTask {
	return &TagTask{
		Task:         NewTask(taskType, source.Name()),
		source:       source,
		sink:         sink,
		tagger:       rowTagger,
		downloadName: downloadName,
	}
}

func (t *TagTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	reader, err := t.source.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", t.SourceName, err)
	}
	defer reader.Close()

	input, err := table.Read(reader)
	if err != nil {
		slog.Error("Task failed", "type", t.Type, "id", t.ID, "source", t.SourceName, "error", err)
		return fmt.Errorf("failed to read %s: %w", t.SourceName, err)
	}

	output, report, err := t.tagger.Run(input)
	if err != nil {
		slog.Error("Task failed", "type", t.Type, "id", t.ID, "source", t.SourceName, "error", err)
		return fmt.Errorf("failed to tag %s: %w", t.SourceName, err)
	}
	t.Report = report

	if err := t.sink.Present(output); err != nil {
		return fmt.Errorf("failed to present results: %w", err)
	}

	if err := t.sink.OfferDownload(output, t.downloadName); err != nil {
		return fmt.Errorf("failed to offer download: %w", err)
	}

	slog.Info("Task completed",
		"type", t.Type,
		"id", t.ID,
		"source", t.SourceName,
		"rows", report.Total,
		"kept", report.Kept,
		"dropped", report.Dropped,
		"duration", t.GetDuration())

	return nil
}
