package drafting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gingfrederik/docx"

	"github.com/spigell/grant-matcher/internal/grants"
)

const (
	FormatMarkdown = "md"
	FormatDocx     = "docx"
)

var ErrUnsupportedFormat = errors.New("unsupported draft format")

// Writer persists a draft into a directory and returns the written path.
// Existing files with the same name are overwritten.
type Writer interface {
	Ext() string
	Write(dir string, d *grants.Draft) (string, error)
}

func NewWriter(format string) (Writer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatMarkdown, "markdown":
		return MarkdownWriter{}, nil
	case FormatDocx:
		return DocxWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnsupportedFormat, format, FormatMarkdown, FormatDocx)
	}
}

// Filename joins the organization and opportunity ids with a double underscore.
func Filename(alignment *grants.AlignmentResult, ext string) string {
	return fmt.Sprintf("%s__%s%s", alignment.Organization.ID, alignment.Opportunity.ID, ext)
}

// SaveAll writes every draft into dir, creating it when missing, and records the
// written file name on each draft.
func SaveAll(dir string, drafts []*grants.Draft, w Writer) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	paths := make([]string, 0, len(drafts))
	for _, d := range drafts {
		path, err := w.Write(dir, d)
		if err != nil {
			return paths, err
		}
		d.Filename = filepath.Base(path)
		paths = append(paths, path)
	}
	return paths, nil
}

type MarkdownWriter struct{}

func (MarkdownWriter) Ext() string { return ".md" }

func (w MarkdownWriter) Write(dir string, d *grants.Draft) (path string, err error) {
	path = filepath.Join(dir, Filename(d.Alignment, w.Ext()))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating draft file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing draft file %q: %w", path, cerr)
		}
	}()

	if _, err := file.WriteString(d.Content); err != nil {
		return "", fmt.Errorf("writing draft file %q: %w", path, err)
	}

	return path, nil
}

// DocxWriter renders the markdown draft into a Word document: "#" lines become the title,
// "##" lines become section headings and every other non-blank line a paragraph.
type DocxWriter struct{}

func (DocxWriter) Ext() string { return ".docx" }

func (w DocxWriter) Write(dir string, d *grants.Draft) (string, error) {
	path := filepath.Join(dir, Filename(d.Alignment, w.Ext()))

	f := docx.NewFile()
	for _, line := range strings.Split(d.Content, "\n") {
		line = strings.TrimRight(line, " ")
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "## "):
			f.AddParagraph() // Spacer
			run := f.AddParagraph().AddText(strings.TrimPrefix(line, "## "))
			run.Size(14)
		case strings.HasPrefix(line, "# "):
			run := f.AddParagraph().AddText(strings.TrimPrefix(line, "# "))
			run.Size(20)
		case strings.HasPrefix(line, "**"):
			run := f.AddParagraph().AddText(strings.ReplaceAll(line, "**", ""))
			run.Size(10)
			run.Color("808080")
		default:
			f.AddParagraph().AddText(line)
		}
	}

	if err := f.Save(path); err != nil {
		return "", fmt.Errorf("writing draft file %q: %w", path, err)
	}
	return path, nil
}
