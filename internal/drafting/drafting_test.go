package drafting

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/grant-matcher/internal/dataset"
	"github.com/spigell/grant-matcher/internal/grants"
	"github.com/spigell/grant-matcher/internal/matching"
)

const expectedWashDraft = `# USAID WASH Innovation Fund

**Funder:** USAID
**Deadline:** 2024-10-15
**Amount Range:** $250k - $1M
**URL:** https://www.usaid.gov/

## Cover Letter
Dear USAID Team,

On behalf of HPG Clean Water Coalition, we are pleased to submit our proposal for the
USAID WASH Innovation Fund. Our organization operates in East Africa and focuses on
water, sanitation, hygiene, infrastructure. We see strong alignment with your
priorities of water, sanitation, hygiene, innovation and look forward to partnering
to scale our impact.

## Organizational Summary
HPG Clean Water Coalition is an HPG member organization with an annual budget of
$1.8M. Our mission is: "Deliver safe water access and hygiene training to rural communities.". We specialize in
community-led maintenance, local artisans, women-led water committees.

## Problem Statement
Communities in East Africa face persistent challenges related to
borehole drilling, solar pumps, behavior change campaigns. Without investment, these barriers will limit
equitable progress toward the Sustainable Development Goals.

## Proposed Activities & Milestones
We will deploy a phased plan that builds on our existing programs:
- Launch an inception workshop with local partners to confirm needs.
- Implement core activities around water, sanitation, hygiene, infrastructure tailored
  to the grant's emphasis on water, sanitation, hygiene, innovation.
- Stand up monitoring systems and community feedback loops to adapt in
  real time.
- Share learnings with HPG peers to multiply impact.

## Measurement & Learning
We will track reach, outcome adoption, and sustainability. Example KPIs
include number of households served, percentage improvement against the
baseline, and cost per beneficiary. We will generate quarterly learning
briefs for the funder.

## Budget Snapshot
Requested support: $250k - $1M.
Funds will prioritize frontline delivery, local staffing, community
governance, and third-party evaluation.

## Attachments to Prepare
- Board roster and bios
- Audited financials
- Letters of support from community partners
- Workplan Gantt chart
`

func demoAlignments(t *testing.T) []*grants.AlignmentResult {
	t.Helper()
	ds := dataset.Demo()
	results := matching.Align(ds.Organizations, ds.Opportunities)
	require.Len(t, results, 9)
	return results
}

func washAlignment() *grants.AlignmentResult {
	ds := dataset.Demo()
	return matching.Score(ds.Organizations[0], ds.Opportunities[0])
}

func TestBuild(t *testing.T) {
	alignment := washAlignment()
	d := Build(alignment)

	assert.Same(t, alignment, d.Alignment)
	assert.Empty(t, d.Filename)
	assert.Equal(t, expectedWashDraft, d.Content)
}

func TestBuildSectionOrder(t *testing.T) {
	content := Build(washAlignment()).Content

	headers := []string{
		"# USAID WASH Innovation Fund",
		"**Funder:**",
		"**Deadline:**",
		"**Amount Range:**",
		"**URL:**",
		"## Cover Letter",
		"## Organizational Summary",
		"## Problem Statement",
		"## Proposed Activities & Milestones",
		"## Measurement & Learning",
		"## Budget Snapshot",
		"## Attachments to Prepare",
	}

	last := -1
	for _, h := range headers {
		idx := strings.Index(content, h)
		require.GreaterOrEqual(t, idx, 0, "missing %q", h)
		assert.Greater(t, idx, last, "%q out of order", h)
		last = idx
	}
}

func TestBatch(t *testing.T) {
	alignments := demoAlignments(t)[:5]

	tests := []struct {
		name       string
		maxResults int
		expect     int
	}{
		{name: "limit below input", maxResults: 2, expect: 2},
		{name: "limit equals input", maxResults: 5, expect: 5},
		{name: "limit above input", maxResults: 8, expect: 5},
		{name: "zero", maxResults: 0, expect: 0},
		{name: "negative", maxResults: -1, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drafts := Batch(alignments, tt.maxResults)
			require.Len(t, drafts, tt.expect)
			for i, d := range drafts {
				assert.Same(t, alignments[i], d.Alignment)
			}
		})
	}
}

func TestBatchKeepsInputOrder(t *testing.T) {
	alignments := demoAlignments(t)
	reversed := []*grants.AlignmentResult{alignments[8], alignments[0], alignments[4]}

	drafts := Batch(reversed, 2)

	require.Len(t, drafts, 2)
	assert.Same(t, alignments[8], drafts[0].Alignment)
	assert.Same(t, alignments[0], drafts[1].Alignment)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "hpg-01__grant-usaid-wash.md", Filename(washAlignment(), ".md"))
}

func TestNewWriter(t *testing.T) {
	for _, format := range []string{"", "md", "Markdown", " MD "} {
		w, err := NewWriter(format)
		require.NoError(t, err)
		assert.Equal(t, ".md", w.Ext())
	}

	w, err := NewWriter("docx")
	require.NoError(t, err)
	assert.Equal(t, ".docx", w.Ext())

	_, err = NewWriter("pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestSaveAllMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	drafts := Batch(demoAlignments(t), 3)

	paths, err := SaveAll(dir, drafts, MarkdownWriter{})
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for i, d := range drafts {
		assert.Equal(t, Filename(d.Alignment, ".md"), d.Filename)
		assert.Equal(t, filepath.Join(dir, d.Filename), paths[i])

		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Equal(t, d.Content, string(data))
	}
}

func TestSaveAllOverwrites(t *testing.T) {
	dir := t.TempDir()
	d := Build(washAlignment())
	path := filepath.Join(dir, "hpg-01__grant-usaid-wash.md")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale content\n", 500)), 0o644))

	_, err := SaveAll(dir, []*grants.Draft{d}, MarkdownWriter{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, d.Content, string(data))
}

func TestSaveAllDocx(t *testing.T) {
	dir := t.TempDir()
	d := Build(washAlignment())

	paths, err := SaveAll(dir, []*grants.Draft{d}, DocxWriter{})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "hpg-01__grant-usaid-wash.docx", d.Filename)

	info, err := os.Stat(paths[0])
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveAllFailsOnUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := SaveAll(file, Batch(demoAlignments(t), 1), MarkdownWriter{})
	assert.Error(t, err)
}
