package tools

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/avstrong/campsite/internal/rates"
	"github.com/avstrong/campsite/internal/slots"
)

var priceListTemplates = template.Must(template.New("pricelist").Funcs(template.FuncMap{
	"euros": euros,
}).Parse(`
{{- define "addons" -}}
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Extra</th><th>Precio por noche (&euro;)</th></tr>
{{- range . }}
<tr><td>{{ .Name }}</td><td>{{ euros .Nightly }}</td></tr>
{{- end }}
</table>
{{- end -}}

{{- define "rates" -}}
{{- range $i, $t := . }}{{ if $i }}
{{ end -}}
<h3>{{ $t.Category }} - {{ $t.Season }}</h3>
<table border="1" cellspacing="0" cellpadding="4">
<tr><th>Tipo de cliente</th><th>Precio por noche (&euro;)</th></tr>
{{- range $t.Rates }}
<tr><td>{{ .CustomerType }}</td><td>{{ euros .Nightly }}</td></tr>
{{- end }}
</table>
{{- end -}}
{{- end -}}
`))

type rateTable struct {
	Season   slots.Season
	Category slots.Category
	Rates    []rates.CustomerRate
}

// priceListHTML renders the add-on table when extras are mentioned, else one
// table per season and category, narrowed by any season or category named.
func (d *Dispatcher) priceListHTML(s *slots.Slots) (string, error) {
	table := d.pricing.Rates()

	var buf bytes.Buffer

	if strings.Contains(s.Text, "extra") {
		if err := priceListTemplates.ExecuteTemplate(&buf, "addons", table.AddOns); err != nil {
			return "", fmt.Errorf("render add-on table: %w", err)
		}

		return buf.String(), nil
	}

	var tables []rateTable

	for _, season := range table.Seasons {
		if !strings.Contains(s.Text, strings.ToLower(string(season.Season))) && mentionsSeason(s.Text) {
			continue
		}

		for _, c := range season.Categories {
			if s.Category != nil && c.Category != *s.Category {
				continue
			}

			tables = append(tables, rateTable{Season: season.Season, Category: c.Category, Rates: c.Rates})
		}
	}

	if len(tables) == 0 {
		return noPricesText, nil
	}

	if err := priceListTemplates.ExecuteTemplate(&buf, "rates", tables); err != nil {
		return "", fmt.Errorf("render price tables: %w", err)
	}

	return buf.String(), nil
}

func mentionsSeason(lower string) bool {
	for _, season := range slots.Seasons() {
		if strings.Contains(lower, strings.ToLower(string(season))) {
			return true
		}
	}

	return false
}
