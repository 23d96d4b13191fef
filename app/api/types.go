package api

import (
	"html/template"

	"github.com/lysyi3m/rank-tags/app/tagger"
)

type Handler struct {
	tagger        *tagger.Tagger
	rules         tagger.Rules
	downloadName  string
	maxUploadSize int64
	version       string
}

type tagsResponse struct {
	Tags   []string      `json:"tags"`
	Report tagger.Report `json:"report"`
}

type indexPage struct {
	Title        string
	Version      string
	Error        string
	Tags         []string
	Report       *tagger.Report
	DownloadHref template.URL
	DownloadName string
}
