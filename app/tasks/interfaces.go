package tasks

import (
	"io"

	"github.com/lysyi3m/rank-tags/app/table"
)

// Source supplies the raw CSV bytes of one upload or file.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Sink receives the processed table: once for display, once as a downloadable file.
type Sink interface {
	Present(tbl *table.Table) error
	OfferDownload(tbl *table.Table, filename string) error
}
