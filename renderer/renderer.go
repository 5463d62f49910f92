// Package renderer formats reports as markdown tables and HTML.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Rhymond/go-money"
	"github.com/etnz/returns"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/*.md
var templates embed.FS

// Options holds configuration for rendering.
type Options struct {
	Currency string // ISO code used to format amounts, USD when empty
}

func (o Options) currency() string {
	if o.Currency == "" {
		return money.USD
	}
	return o.Currency
}

// Money formats d in the given currency, rounded to the currency fraction.
func Money(d decimal.Decimal, currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := d.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// Quantity formats a number of shares without trailing zeros.
func Quantity(d decimal.Decimal) string { return d.String() }

func funcs(opts Options) template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return Money(d, opts.currency()) },
		"qty":   Quantity,
		"pct":   func(r returns.Return) string { return r.String() },
		"vol": func(r returns.Risk) string {
			if r.Months < 2 {
				return "N/A"
			}
			return fmt.Sprintf("%.2f%%", r.AnnualizedVolatility*100)
		},
		"sharpe": func(r returns.Risk) string {
			if r.Sharpe == nil {
				return "N/A"
			}
			return fmt.Sprintf("%.2f", *r.Sharpe)
		},
	}
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, opts Options, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(opts)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

// Summary renders the horizon summary of report, followed by its diagnostics.
func Summary(report *returns.Report, opts Options) string {
	partials := map[string]string{"diagnostics": "diagnostics.md"}
	return renderTemplate("summary", "summary.md", partials, opts, report)
}

// Records renders the monthly records of an instrument.
func Records(ir returns.InstrumentReport, opts Options) string {
	return renderTemplate("records", "records.md", nil, opts, ir)
}

// Flows renders the weighted cash flow components of an instrument.
func Flows(ir returns.InstrumentReport, opts Options) string {
	return renderTemplate("flows", "flows.md", nil, opts, ir)
}

// Portfolio renders the consolidated monthly portfolio records.
func Portfolio(report *returns.Report, opts Options) string {
	return renderTemplate("portfolio", "portfolio.md", nil, opts, report)
}

// HTML converts markdown to an HTML fragment, with GitHub flavored tables.
func HTML(markdown string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
