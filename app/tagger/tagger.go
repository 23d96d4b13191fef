package tagger

import (
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"github.com/lysyi3m/rank-tags/app/table"
)

type Tagger struct {
	classifier *Classifier
}

func NewTagger(classifier *Classifier) *Tagger {
	return &Tagger{classifier: classifier}
}

// Process tags tbl with the default classification rules.
func Process(tbl *table.Table) (*table.Table, error) {
	out, _, err := NewTagger(NewClassifier(DefaultRules())).Run(tbl)
	return out, err
}

// Run returns a single-column "Full Tag" table with one row per input row
// whose date parsed, in input order. Rows with bad dates are counted in the
// report and otherwise discarded.
func (t *Tagger) Run(tbl *table.Table) (*table.Table, Report, error) {
	if err := RequireColumns(tbl); err != nil {
		return nil, Report{}, err
	}

	out := table.New(ColumnFullTag)
	report := Report{Total: tbl.Len()}

	for entry, err := range t.Entries(tbl) {
		if err != nil {
			report.Dropped++
			slog.Debug("Row dropped", "error", err)
			continue
		}
		out.Append(entry.Tag())
		report.Kept++
	}

	if report.Dropped > 0 {
		slog.Info("Rows dropped", "total", report.Total, "dropped", report.Dropped)
	}

	return out, report, nil
}

// Entries yields one result per data row: an Entry, or a *RowError when the
// row's date does not parse. If required columns are missing it yields that
// error once and stops.
func (t *Tagger) Entries(tbl *table.Table) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		if err := RequireColumns(tbl); err != nil {
			yield(Entry{}, err)
			return
		}

		contentTypeIdx := tbl.Index(ColumnContentType)
		dateIdx := tbl.Index(ColumnDate)
		keywordIdx := tbl.Index(ColumnTargetKeyword)

		for i, row := range tbl.Rows {
			contentType := table.Cell(row, contentTypeIdx)
			entry := Entry{
				Row:       i + 1,
				Keyword:   table.Cell(row, keywordIdx),
				Novelty:   t.classifier.Novelty(contentType),
				Placement: t.classifier.Placement(contentType),
			}

			formatted, err := FormatDate(table.Cell(row, dateIdx))
			if err != nil {
				if !yield(Entry{Row: entry.Row}, &RowError{Row: entry.Row, Err: err}) {
					return
				}
				continue
			}
			entry.FormattedDate = formatted

			if !yield(entry, nil) {
				return
			}
		}
	}
}

func RequireColumns(tbl *table.Table) error {
	var missing []string
	for _, column := range RequiredColumns {
		if tbl.Index(column) < 0 {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// BuildTag joins the tag parts with ", ". Commas inside keyword are kept as-is.
func BuildTag(keyword, formattedDate string, novelty Novelty, placement Placement) string {
	return fmt.Sprintf("%s, %s, %s, %s", keyword, formattedDate, novelty, placement)
}
