package services

import (
	"html/template"
	"os"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"datadash/internal"
)

// RenderService turns non-tabular content into HTML fragments for the shell.
type RenderService struct{}

// NewRenderService creates a render service.
func NewRenderService() *RenderService { return &RenderService{} }

// NotesHTML reads an optional markdown notes file and renders it for the
// notes panel. A missing or unreadable file yields an empty fragment.
func (r *RenderService) NotesHTML(path string) template.HTML {
	if path == "" {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		internal.DefaultLogger.Debug("[RenderService] notes file skipped: %v", err)
		return ""
	}
	return r.MarkdownToHTML(raw)
}

// MarkdownToHTML renders markdown to an HTML fragment.
func (r *RenderService) MarkdownToHTML(src []byte) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML(src, p, renderer))
}
