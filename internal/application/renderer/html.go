package renderer

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	"github.com/sangkips/billcraft-api/internal/domain/enum"
)

var (
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	fontFamilyFilter = regexp.MustCompile(`^[A-Za-z0-9 \-,']+$`)
)

// HTMLRenderer turns a document tree into a self-contained HTML page
// sized for an A4 sheet. The exported artifact is this page verbatim,
// so preview and export share one layout.
type HTMLRenderer struct {
	professional *template.Template
	minimalist   *template.Template
}

// NewHTMLRenderer parses the two built-in layout families
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		professional: template.Must(template.New("professional").Parse(professionalHTMLTemplate)),
		minimalist:   template.Must(template.New("minimalist").Parse(minimalistHTMLTemplate)),
	}
}

// RenderHTML renders the document through its template family. Unknown
// families fall back to the professional layout.
func (r *HTMLRenderer) RenderHTML(doc *Document) (string, error) {
	page := *doc
	page.Theme.PrimaryColor = sanitizeColor(page.Theme.PrimaryColor, "#1f2a44")
	page.Theme.TextColor = sanitizeColor(page.Theme.TextColor, "#111827")
	page.Theme.BorderColor = sanitizeColor(page.Theme.BorderColor, "#e5e7eb")
	page.Theme.FontFamily = sanitizeFont(page.Theme.FontFamily)

	tpl := r.professional
	if page.Family.OrDefault() == enum.TemplateFamilyMinimalist {
		tpl = r.minimalist
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, &page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func sanitizeColor(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return fallback
}

func sanitizeFont(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed != "" && fontFamilyFilter.MatchString(trimmed) {
		return trimmed
	}
	return "Helvetica Neue"
}

const sharedStyles = `
    @page { size: A4; margin: 0; }
    * { box-sizing: border-box; }
    body {
      margin: 0 auto;
      width: 210mm;
      min-height: 297mm;
      padding: 0;
      font-family: "{{.Theme.FontFamily}}", Arial, sans-serif;
      color: {{.Theme.TextColor}};
      background: #ffffff;
    }
    .page { padding: 14mm 16mm; }
    .section { margin-bottom: 22px; }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    table { width: 100%; border-collapse: collapse; font-size: 13px; }
    th, td {
      padding: 9px 10px;
      border-bottom: 1px solid {{.Theme.BorderColor}};
      text-align: left;
    }
    th { font-size: 11px; text-transform: uppercase; letter-spacing: 0.04em; }
    .sub-items { margin: 4px 0 0 12px; padding: 0; list-style: none; font-size: 12px; color: #6b7280; }
    .totals { margin-top: 14px; margin-left: auto; width: 45%; font-size: 14px; }
    .totals td { border-bottom: none; padding: 4px 10px; }
    .totals .grand td {
      border-top: 2px solid {{.Theme.PrimaryColor}};
      font-weight: 700;
      font-size: 16px;
    }
    .amount { text-align: right; }
    .footer-block { font-size: 12px; color: #6b7280; margin-top: 16px; }
`

const documentBody = `
    <div class="section parties">
      <div>
        <div class="label">From</div>
        {{if .Company.Placeholder}}
        <div class="placeholder">{{.Company.Name}}</div>
        {{else}}
        {{if and .Theme.LogoVisible .Company.LogoURL}}<img class="logo" src="{{.Company.LogoURL}}" alt="Logo" />{{end}}
        <div><strong>{{.Company.Name}}</strong></div>
        {{if .Company.Tagline}}<div>{{.Company.Tagline}}</div>{{end}}
        <div>{{.Company.Email}}</div>
        {{if .Company.Address}}<div>{{.Company.Address}}</div>{{end}}
        {{range .Company.CustomFields}}<div>{{.Label}}: {{.Value}}</div>{{end}}
        {{end}}
      </div>
      <div>
        <div class="label">Bill To</div>
        <div><strong>{{.Client.Name}}</strong></div>
        {{if .Client.Email}}<div>{{.Client.Email}}</div>{{end}}
        {{if .Client.Phone}}<div>{{.Client.Phone}}</div>{{end}}
        {{if .Client.Address}}<div>{{.Client.Address}}</div>{{end}}
      </div>
    </div>

    <div class="section">
      <table>
        <thead>
          <tr>
            {{range .Columns}}<th>{{.Label}}</th>{{end}}
          </tr>
        </thead>
        <tbody>
          {{range .Rows}}
          <tr>
            {{range .Cells}}<td>{{.}}</td>{{end}}
          </tr>
          {{if .SubItems}}
          <tr>
            <td colspan="{{len $.Columns}}">
              <ul class="sub-items">
                {{range .SubItems}}<li>{{.Name}}{{if .Quantity}} ({{.Quantity}}){{end}}</li>{{end}}
              </ul>
            </td>
          </tr>
          {{end}}
          {{end}}
        </tbody>
      </table>
      <table class="totals">
        <tr><td>Subtotal</td><td class="amount">{{.Totals.Subtotal}}</td></tr>
        <tr><td>{{.Totals.TaxLabel}}</td><td class="amount">{{.Totals.TaxAmount}}</td></tr>
        <tr><td>{{.Totals.DiscountLabel}}</td><td class="amount">{{.Totals.Discount}}</td></tr>
        <tr class="grand"><td>Total</td><td class="amount">{{.Totals.Total}}</td></tr>
      </table>
    </div>

    {{if .Payment}}
    <div class="section footer-block">
      <div class="label">Payment</div>
      <div><strong>{{.Payment.Name}}</strong></div>
      {{range .Payment.Fields}}<div>{{.Label}}: {{.Value}}</div>{{end}}
      {{if .Payment.ReceivedBy}}<div>Received by: {{.Payment.ReceivedBy}}</div>{{end}}
    </div>
    {{end}}
    {{if .Notes}}
    <div class="footer-block"><div class="label">Notes</div><div>{{.Notes}}</div></div>
    {{end}}
    {{if .Terms}}
    <div class="footer-block"><div class="label">Terms</div><div>{{.Terms}}</div></div>
    {{end}}
`

// professionalHTMLTemplate renders a flat solid banner header
const professionalHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>` + sharedStyles + `
    .banner {
      background: {{.Theme.PrimaryColor}};
      color: #ffffff;
      padding: 12mm 16mm;
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
    }
    .banner h1 { margin: 0; font-size: 26px; letter-spacing: 0.06em; }
    .banner .meta { text-align: right; font-size: 13px; }
    .parties { display: flex; justify-content: space-between; gap: 24px; }
    .logo { max-height: 56px; margin-bottom: 8px; display: block; }
    .placeholder { color: #9ca3af; font-style: italic; }
  </style>
</head>
<body>
  <div class="banner">
    <h1>INVOICE</h1>
    <div class="meta">
      <div><strong>{{.InvoiceNumber}}</strong></div>
      <div>Issued: {{.IssuedAt}}</div>
      <div>Status: {{.Status}}</div>
      {{if .Platform}}<div>Platform: {{.Platform}}</div>{{end}}
    </div>
  </div>
  <div class="page">` + documentBody + `
  </div>
</body>
</html>
`

// minimalistHTMLTemplate renders a diagonal geometric banner with
// lighter table chrome; the field and totals structure is identical to
// the professional layout.
const minimalistHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>` + sharedStyles + `
    .banner {
      position: relative;
      padding: 16mm 16mm 10mm;
      overflow: hidden;
    }
    .banner::before {
      content: "";
      position: absolute;
      top: -60mm;
      right: -40mm;
      width: 120mm;
      height: 120mm;
      background: {{.Theme.PrimaryColor}};
      transform: rotate(35deg);
      opacity: 0.92;
    }
    .banner h1 {
      margin: 0;
      font-size: 22px;
      font-weight: 300;
      letter-spacing: 0.24em;
    }
    .banner .meta { position: relative; font-size: 13px; margin-top: 6px; }
    th { border-bottom: 2px solid {{.Theme.PrimaryColor}}; }
    .parties { display: flex; justify-content: space-between; gap: 24px; }
    .logo { max-height: 48px; margin-bottom: 8px; display: block; }
    .placeholder { color: #9ca3af; font-style: italic; }
  </style>
</head>
<body>
  <div class="banner">
    <h1>INVOICE</h1>
    <div class="meta">
      <div><strong>{{.InvoiceNumber}}</strong></div>
      <div>Issued: {{.IssuedAt}} &middot; Status: {{.Status}}</div>
      {{if .Platform}}<div>Platform: {{.Platform}}</div>{{end}}
    </div>
  </div>
  <div class="page">` + documentBody + `
  </div>
</body>
</html>
`
