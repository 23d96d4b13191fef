package tagger

import (
	"errors"
	"fmt"
)

const (
	ColumnContentType   = "Content Type"
	ColumnDate          = "Date"
	ColumnTargetKeyword = "Target Keyword"
	ColumnFullTag       = "Full Tag"
)

// RequiredColumns must all be present in the input header.
var RequiredColumns = []string{ColumnContentType, ColumnDate, ColumnTargetKeyword}

var ErrMissingColumn = errors.New("missing required column")

type Novelty string

const (
	NoveltyNew      Novelty = "New"
	NoveltyExisting Novelty = "Existing"
	NoveltyUnknown  Novelty = "Unknown"
)

type Placement string

const (
	PlacementPost    Placement = "Post"
	PlacementPage    Placement = "Page"
	PlacementUnknown Placement = "Unknown"
)

// Entry holds the derived fields of one input row whose date parsed.
type Entry struct {
	Row           int // 1-based data row number
	Keyword       string
	FormattedDate string
	Novelty       Novelty
	Placement     Placement
}

func (e Entry) Tag() string {
	return BuildTag(e.Keyword, e.FormattedDate, e.Novelty, e.Placement)
}

// Report counts what happened to the input rows of one run.
type Report struct {
	Total   int `json:"total"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// RowError reports why a single data row was dropped.
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
