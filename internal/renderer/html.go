package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// One generic document template renders every report page from its template's
// field/group schema; there is no per-template markup.
const documentHTML = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        @page {
            margin: 0;
            size: A4;
        }

        body {
            margin: 0;
            padding: 0;
            font-family: 'Helvetica Neue', Arial, sans-serif;
            color: #1a1a1a;
        }

        .report-page {
            position: relative;
            width: 210mm;
            min-height: 297mm;
            padding: 18mm 16mm;
            box-sizing: border-box;
            page-break-after: always;
        }

        .page-header {
            border-bottom: 2px solid #2b4a6f;
            padding-bottom: 6px;
            margin-bottom: 14px;
        }

        .page-header h1 {
            font-size: 18px;
            margin: 0;
        }

        .page-header .meta {
            font-size: 10px;
            color: #666;
        }

        .section {
            margin-bottom: 12px;
        }

        .section h2 {
            font-size: 13px;
            text-transform: uppercase;
            letter-spacing: 0.05em;
            color: #2b4a6f;
            border-bottom: 1px solid #d8d8d8;
            padding-bottom: 2px;
            margin: 0 0 6px 0;
        }

        .row {
            display: flex;
            font-size: 11px;
            padding: 2px 0;
        }

        .row .label {
            width: 35%;
            color: #555;
        }

        .row .value {
            width: 65%;
        }

        .row .value.multiline {
            white-space: pre-wrap;
        }

        .row .value img {
            max-width: 100%;
            max-height: 60mm;
        }

        .watermark {
            position: absolute;
            top: 45%;
            left: 10%;
            font-size: 72px;
            color: rgba(180, 30, 30, 0.15);
            transform: rotate(-30deg);
            pointer-events: none;
        }

        .branding {
            position: absolute;
            bottom: 8mm;
            left: 16mm;
            right: 16mm;
            font-size: 9px;
            color: #999;
            border-top: 1px solid #e0e0e0;
            padding-top: 3px;
        }
    </style>
</head>
<body>
    {{range .Pages}}
    <div class="report-page">
        {{if $.IncludeWatermark}}<div class="watermark">DRAFT</div>{{end}}
        <div class="page-header">
            <h1>{{.Title}}</h1>
            <div class="meta">{{$.ReportName}} &mdash; page {{.Number}} &mdash; {{$.GeneratedAt}}</div>
        </div>
        {{range .Sections}}
        <div class="section">
            <h2>{{.Name}}</h2>
            {{range .Rows}}
            <div class="row">
                <div class="label">{{.Label}}</div>
                {{if eq .Type "image"}}
                <div class="value">{{if .ImageSrc}}<img src="{{.ImageSrc}}">{{end}}</div>
                {{else if eq .Type "multiline"}}
                <div class="value multiline">{{.Value}}</div>
                {{else}}
                <div class="value">{{.Value}}</div>
                {{end}}
            </div>
            {{end}}
        </div>
        {{end}}
        {{if $.IncludeBranding}}<div class="branding">{{$.ReportName}} &middot; generated by SiteReport</div>{{end}}
    </div>
    {{end}}
</body>
</html>`

var documentTmpl = template.Must(template.New("document").Parse(documentHTML))

type docView struct {
	ReportName       string
	GeneratedAt      string
	IncludeWatermark bool
	IncludeBranding  bool
	Pages            []pageView
}

type pageView struct {
	Number   int
	Title    string
	Sections []sectionView
}

type sectionView struct {
	Name string
	Rows []rowView
}

type rowView struct {
	Label    string
	Type     string
	Value    string
	ImageSrc template.URL
}

// BuildHTML renders the whole document to an HTML string. Fields are grouped
// by their declared group (falling back to the dotted id prefix) in schema
// order; missing values render as empty.
func BuildHTML(doc Document) (string, error) {
	view := docView{
		ReportName:       doc.ReportName,
		GeneratedAt:      doc.GeneratedAt.Format("2006-01-02 15:04"),
		IncludeWatermark: doc.IncludeWatermark,
		IncludeBranding:  doc.IncludeBranding,
	}

	for _, pd := range doc.Pages {
		pv := pageView{
			Number: pd.Page.PageOrder,
			Title:  pd.Template.Title,
		}

		sectionIndex := make(map[string]int)
		for _, f := range pd.Template.Fields {
			group := fieldGroup(f.Group, f.ID)
			idx, ok := sectionIndex[group]
			if !ok {
				idx = len(pv.Sections)
				sectionIndex[group] = idx
				pv.Sections = append(pv.Sections, sectionView{Name: group})
			}

			row := rowView{
				Label: f.Label,
				Type:  f.Type,
				Value: pd.Page.Values[f.ID],
			}
			if f.Type == "image" && row.Value != "" {
				row.ImageSrc = template.URL(row.Value)
			}
			pv.Sections[idx].Rows = append(pv.Sections[idx].Rows, row)
		}

		view.Pages = append(view.Pages, pv)
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to execute document template: %w", err)
	}

	return buf.String(), nil
}

func fieldGroup(group, id string) string {
	if group != "" {
		return group
	}
	if i := strings.Index(id, "."); i > 0 {
		return id[:i]
	}
	return "general"
}
