package api

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/lysyi3m/rank-tags/app/table"
)

type uploadSource struct {
	header *multipart.FileHeader
}

func (s *uploadSource) Name() string {
	return s.header.Filename
}

func (s *uploadSource) Open() (io.ReadCloser, error) {
	return s.header.Open()
}

// responseSink keeps the processed table and its CSV encoding in memory so
// the handler can render whichever representation the route needs.
type responseSink struct {
	table    *table.Table
	filename string
	csv      bytes.Buffer
}

func (s *responseSink) Present(tbl *table.Table) error {
	s.table = tbl
	return nil
}

func (s *responseSink) OfferDownload(tbl *table.Table, filename string) error {
	s.filename = filename
	s.csv.Reset()
	return table.Write(&s.csv, tbl)
}
