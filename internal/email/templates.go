// Package email builds the HTML bodies for outbound mail. Styling is
// inlined since email clients ignore stylesheets.
package email

import (
	"fmt"
	"html"
	"strings"
	"time"

	"priceghost/internal/misc"
	"priceghost/internal/model"
)

const (
	styleBody = "font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;" +
		" line-height: 1.6; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #ffffff;"
	styleHeader = "text-align: center; padding: 24px 0; border-bottom: 1px solid #e5e7eb; margin-bottom: 24px;"
	styleLogo   = "color: #10b981; font-size: 28px; font-weight: bold; margin: 0;"
	styleCard   = "background: #f9fafb; border-radius: 12px; padding: 20px; margin-bottom: 16px;"
	styleButton = "display: inline-block; background: #10b981; color: white; padding: 14px 28px;" +
		" border-radius: 8px; text-decoration: none; font-weight: 600; font-size: 16px;"
	styleButtonSecondary = "display: inline-block; background: #f3f4f6; color: #374151; padding: 12px 24px;" +
		" border-radius: 8px; text-decoration: none; font-weight: 500; font-size: 14px;"
	styleFooter = "font-size: 12px; color: #9ca3af; text-align: center; padding-top: 24px;" +
		" border-top: 1px solid #e5e7eb; margin-top: 24px;"
)

func wrapper(content string, preheader string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	if preheader != "" {
		fmt.Fprintf(&b, `<span style="display:none;font-size:1px;color:#ffffff;max-height:0px;overflow:hidden;">%s</span>`,
			html.EscapeString(preheader))
	}
	b.WriteString(`</head><body style="` + styleBody + `"><div class="container">`)
	b.WriteString(content)
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func header() string {
	return `<div style="` + styleHeader + `">` +
		`<h1 style="` + styleLogo + `">&#128123; PriceGhost</h1>` +
		`<p style="color: #6b7280; margin: 8px 0 0 0; font-size: 14px;">Your personal price tracker</p>` +
		`</div>`
}

func footer() string {
	return fmt.Sprintf(`<div style="%s">`+
		`<p style="margin: 0 0 8px 0;">You're receiving this because you're tracking products on PriceGhost.</p>`+
		`<p style="margin: 0;"><a href="https://priceghost.app/settings" style="color: #9ca3af;">Manage preferences</a></p>`+
		`<p style="margin: 12px 0 0 0; font-size: 11px;">&copy; %d PriceGhost. All rights reserved.</p>`+
		`</div>`, styleFooter, time.Now().Year())
}

type productCard struct {
	Name          string
	URL           string
	ImageURL      string
	Currency      string
	CurrentPrice  float64
	PreviousPrice *float64
	PercentOff    float64
	Highlight     bool
}

func (pc productCard) render() string {
	var b strings.Builder
	cardStyle := styleCard
	if pc.Highlight {
		cardStyle += " border: 2px solid #10b981; background: #ecfdf5;"
	}
	fmt.Fprintf(&b, `<div style="%s"><table width="100%%" cellpadding="0" cellspacing="0" border="0"><tr>`, cardStyle)
	if pc.ImageURL != "" {
		fmt.Fprintf(&b, `<td width="80" valign="top" style="padding-right: 16px;">`+
			`<img src="%s" alt="" width="80" height="80" style="border-radius: 8px; object-fit: contain; background: #fff;">`+
			`</td>`, html.EscapeString(pc.ImageURL))
	}
	fmt.Fprintf(&b, `<td valign="top"><h3 style="margin: 0 0 8px 0; font-size: 15px; color: #1f2937;">%s</h3>`,
		html.EscapeString(misc.StringLimit(pc.Name, 60)))
	b.WriteString(`<div style="margin-bottom: 12px;">`)
	if pc.PreviousPrice != nil {
		fmt.Fprintf(&b, `<span style="text-decoration: line-through; color: #9ca3af; font-size: 14px; margin-right: 8px;">%s</span>`,
			model.FormatPrice(*pc.PreviousPrice, pc.Currency))
	}
	priceColor := "#1f2937"
	if pc.PreviousPrice != nil && *pc.PreviousPrice > pc.CurrentPrice {
		priceColor = "#10b981"
	}
	fmt.Fprintf(&b, `<span style="font-size: 20px; font-weight: bold; color: %s;">%s</span>`,
		priceColor, model.FormatPrice(pc.CurrentPrice, pc.Currency))
	if pc.PercentOff > 0 {
		fmt.Fprintf(&b, `<span style="display: inline-block; background: #dcfce7; color: #166534; padding: 2px 8px;`+
			` border-radius: 12px; font-size: 12px; font-weight: 600; margin-left: 8px;">%.0f%% OFF</span>`, pc.PercentOff)
	}
	b.WriteString(`</div>`)
	fmt.Fprintf(&b, `<a href="%s" style="%s">View Deal &rarr;</a>`, html.EscapeString(pc.URL), styleButtonSecondary)
	b.WriteString(`</td></tr></table></div>`)
	return b.String()
}

type stat struct {
	Label string
	Value string
	Color string
}

func statsBar(stats []stat) string {
	var b strings.Builder
	b.WriteString(`<table width="100%" cellpadding="0" cellspacing="0" border="0" style="margin-bottom: 24px;"><tr>`)
	for i, s := range stats {
		if i > 0 {
			b.WriteString(`<td width="12"></td>`)
		}
		color := s.Color
		if color == "" {
			color = "#1f2937"
		}
		fmt.Fprintf(&b, `<td style="text-align: center; padding: 16px; background: #f3f4f6; border-radius: 8px;">`+
			`<div style="font-size: 24px; font-weight: bold; color: %s; margin-bottom: 4px;">%s</div>`+
			`<div style="font-size: 12px; color: #6b7280; text-transform: uppercase;">%s</div>`+
			`</td>`, color, html.EscapeString(s.Value), html.EscapeString(s.Label))
	}
	b.WriteString(`</tr></table>`)
	return b.String()
}
