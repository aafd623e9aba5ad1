package drafting

import (
	"bytes"
	"strings"
	"text/template"

	_ "embed"

	"github.com/spigell/grant-matcher/internal/grants"
)

//go:embed draft.md.tmpl
var draftTemplate string

var draft = template.Must(template.New("draft").Funcs(template.FuncMap{
	"join": func(values []string) string { return strings.Join(values, ", ") },
}).Parse(draftTemplate))

// DefaultBatchSize is the number of drafts built when no limit is configured.
const DefaultBatchSize = 5

var attachments = []string{
	"Board roster and bios",
	"Audited financials",
	"Letters of support from community partners",
	"Workplan Gantt chart",
}

type draftData struct {
	Organization *grants.Organization
	Opportunity  *grants.Opportunity
	Attachments  []string
}

// Build renders the proposal draft for one alignment.
func Build(alignment *grants.AlignmentResult) *grants.Draft {
	var buf bytes.Buffer
	data := draftData{
		Organization: alignment.Organization,
		Opportunity:  alignment.Opportunity,
		Attachments:  attachments,
	}

	// The template only reads string fields of validated records, so execution cannot fail.
	if err := draft.Execute(&buf, data); err != nil {
		panic(err)
	}

	return &grants.Draft{
		Alignment: alignment,
		Content:   buf.String(),
	}
}

// Batch builds drafts for the first maxResults alignments in the given order.
func Batch(alignments []*grants.AlignmentResult, maxResults int) []*grants.Draft {
	drafts := make([]*grants.Draft, 0, max(0, min(maxResults, len(alignments))))
	for _, alignment := range alignments {
		if len(drafts) >= maxResults {
			break
		}
		drafts = append(drafts, Build(alignment))
	}
	return drafts
}
