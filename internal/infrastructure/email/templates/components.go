// Package templates provides email template components
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

type ButtonProps struct {
	Text            string
	URL             string
	BackgroundColor string
	TextColor       string
}

// DetailRow is one label/value line of a details table.
type DetailRow struct {
	Label string
	Value string
}

var (
	buttonTemplate = template.Must(template.New("emailButton").Parse(`
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" class="btn btn-primary" style="border-collapse: separate; box-sizing: border-box; width: 100%;" width="100%">
      <tbody>
        <tr>
          <td align="left" style="vertical-align: top; padding-bottom: 16px;" valign="top">
            <a href="{{.URL}}" target="_blank" style="border: solid 2px {{.BackgroundColor}}; border-radius: 4px; display: inline-block; font-size: 16px; font-weight: bold; margin: 0; padding: 12px 24px; text-decoration: none; background-color: {{.BackgroundColor}}; color: {{.TextColor}};">{{.Text}}</a>
          </td>
        </tr>
      </tbody>
    </table>`))

	paragraphTemplate = template.Must(template.New("emailParagraph").Parse(`<p style="font-size: 16px; font-weight: normal; margin: 0; margin-bottom: 16px;">{{.}}</p>`))

	detailsTemplate = template.Must(template.New("emailDetails").Parse(`
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" style="border-collapse: collapse; width: 100%; margin-bottom: 16px;" width="100%">
      <tbody>
      {{- range .}}
        <tr>
          <td style="padding: 6px 12px 6px 0; color: #6b7280; font-size: 14px; white-space: nowrap; vertical-align: top;">{{.Label}}</td>
          <td style="padding: 6px 0; font-size: 16px; vertical-align: top;">{{.Value}}</td>
        </tr>
      {{- end}}
      </tbody>
    </table>`))
)

// GetButton renders a call-to-action link. Unsafe URLs become "#".
func GetButton(props ButtonProps) (string, error) {
	data := props
	if data.BackgroundColor == "" {
		data.BackgroundColor = "#0867ec"
	}
	if data.TextColor == "" {
		data.TextColor = "#ffffff"
	}
	data.BackgroundColor = sanitizeColor(data.BackgroundColor)
	data.TextColor = sanitizeColor(data.TextColor)
	if data.URL = sanitizeEmailURL(data.URL); data.URL == "" {
		data.URL = "#"
	}

	var buf bytes.Buffer
	if err := buttonTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email button: %w", err)
	}
	return buf.String(), nil
}

// GetParagraph renders escaped paragraph text.
func GetParagraph(text string) (string, error) {
	var buf bytes.Buffer
	if err := paragraphTemplate.Execute(&buf, text); err != nil {
		return "", fmt.Errorf("failed to render email paragraph: %w", err)
	}
	return buf.String(), nil
}

// GetDetailsTable renders label/value rows, skipping rows with empty values.
func GetDetailsTable(rows []DetailRow) (string, error) {
	visible := make([]DetailRow, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row.Value) != "" {
			visible = append(visible, row)
		}
	}

	var buf bytes.Buffer
	if err := detailsTemplate.Execute(&buf, visible); err != nil {
		return "", fmt.Errorf("failed to render email details: %w", err)
	}
	return buf.String(), nil
}

// sanitizeEmailURL accepts absolute http(s) and mailto URLs only.
func sanitizeEmailURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return ""
		}
		return u.String()
	case "mailto":
		return u.String()
	default:
		return ""
	}
}

func sanitizeColor(color string) string {
	color = strings.TrimSpace(color)
	if len(color) != 4 && len(color) != 7 {
		return "#000000"
	}
	if color[0] != '#' {
		return "#000000"
	}
	for _, c := range color[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "#000000"
		}
	}
	return color
}
