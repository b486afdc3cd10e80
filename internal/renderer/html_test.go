package renderer

import (
	"strings"
	"testing"
	"time"

	gormmodels "github.com/probuild/sitereport-backend/internal/models/gorm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() Document {
	template := gormmodels.Template{
		ID:     "tpl-1",
		PageID: "report-3",
		Title:  "Concrete Pour Record",
		Fields: []gormmodels.TemplateField{
			{ID: "general.location", Label: "Location", Type: "text", Group: "general"},
			{ID: "general.notes", Label: "Notes", Type: "multiline", Group: "general"},
			{ID: "quality.slump", Label: "Slump Test", Type: "text", Group: "quality"},
		},
	}
	page := gormmodels.ReportPage{
		ID:        "page-1",
		PageOrder: 1,
		Values: map[string]string{
			"general.location": "Level 3, Zone B",
			"quality.slump":    "110mm",
		},
	}

	return Document{
		ReportName:      "Harbour Tower",
		GeneratedAt:     time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		IncludeBranding: true,
		Pages:           []PageData{{Page: page, Template: template}},
	}
}

func TestBuildHTMLSectionsAndValues(t *testing.T) {
	html, err := BuildHTML(testDocument())
	require.NoError(t, err)

	assert.Contains(t, html, "Concrete Pour Record")
	assert.Contains(t, html, "Harbour Tower")
	assert.Contains(t, html, "Level 3, Zone B")
	assert.Contains(t, html, "110mm")

	// One section heading per group, in schema order.
	generalAt := strings.Index(html, "<h2>general</h2>")
	qualityAt := strings.Index(html, "<h2>quality</h2>")
	require.GreaterOrEqual(t, generalAt, 0)
	require.GreaterOrEqual(t, qualityAt, 0)
	assert.Less(t, generalAt, qualityAt)

	// Unset fields still render their row, with an empty value.
	assert.Contains(t, html, "Notes")
}

func TestBuildHTMLEscapesValues(t *testing.T) {
	doc := testDocument()
	doc.Pages[0].Page.Values["general.location"] = `<script>alert("x")</script>`

	html, err := BuildHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestBuildHTMLWatermarkAndBranding(t *testing.T) {
	doc := testDocument()
	doc.IncludeWatermark = false
	doc.IncludeBranding = false
	html, err := BuildHTML(doc)
	require.NoError(t, err)
	assert.NotContains(t, html, `class="watermark"`)
	assert.NotContains(t, html, `class="branding"`)

	doc.IncludeWatermark = true
	doc.IncludeBranding = true
	html, err = BuildHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, `class="watermark"`)
	assert.Contains(t, html, `class="branding"`)
}

func TestBuildHTMLGroupFallsBackToIDPrefix(t *testing.T) {
	doc := testDocument()
	doc.Pages[0].Template.Fields = append(doc.Pages[0].Template.Fields,
		gormmodels.TemplateField{ID: "signoff.engineer", Label: "Engineer", Type: "text"})

	html, err := BuildHTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "<h2>signoff</h2>")
}

func TestBuildHTMLPageBreakPerPage(t *testing.T) {
	doc := testDocument()
	doc.Pages = append(doc.Pages, doc.Pages[0])
	doc.Pages[1].Page.PageOrder = 2

	html, err := BuildHTML(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(html, `class="report-page"`))
	assert.Contains(t, html, "page 1")
	assert.Contains(t, html, "page 2")
}
