package email

import (
	"fmt"
	"html"
	"strings"

	"priceghost/internal/misc"
	"priceghost/internal/model"
)

const digestMaxDrops = 5

// WeeklyDigest renders the weekly price report and returns its subject and
// HTML body.
func WeeklyDigest(userName string, d model.Digest) (subject string, body string) {
	subject = fmt.Sprintf("\U0001F4CA Your Weekly Price Report: %d drops, $%.0f savings",
		len(d.PriceDrops), d.TotalSavings)

	var b strings.Builder
	b.WriteString(header())

	greeting := "Hi"
	if userName != "" {
		greeting = "Hi " + html.EscapeString(userName)
	}
	fmt.Fprintf(&b, `<p style="font-size: 16px;">%s, here's what happened with your tracked products this week.</p>`, greeting)

	b.WriteString(statsBar([]stat{
		{Label: "Tracked", Value: fmt.Sprintf("%d", d.TotalProducts)},
		{Label: "Price Drops", Value: fmt.Sprintf("%d", len(d.PriceDrops)), Color: "#10b981"},
		{Label: "Savings", Value: fmt.Sprintf("$%.0f", d.TotalSavings), Color: "#10b981"},
	}))

	if d.TopDeal != nil {
		td := *d.TopDeal
		fmt.Fprintf(&b, `<h2 style="font-size: 18px; margin: 24px 0 12px 0;">&#127942; Top Deal This Week</h2>`+
			`<div style="%s border: 2px solid #10b981; background: #ecfdf5; text-align: center;">`+
			`<h3 style="margin: 0 0 8px 0;">%s</h3>`+
			`<p style="margin: 0 0 4px 0; color: #166534; font-weight: 600;">Save %s (%.0f%% off)</p>`+
			`<a href="%s" style="%s margin-top: 12px;">View Deal</a>`+
			`</div>`,
			styleCard,
			html.EscapeString(misc.StringLimit(td.Name, 50)),
			model.FormatPrice(-td.PriceChange, td.Currency),
			-td.PercentChange,
			html.EscapeString(td.URL),
			styleButton,
		)
	}

	if len(d.PriceDrops) > 0 {
		b.WriteString(`<h2 style="font-size: 18px; margin: 24px 0 12px 0;">&#128201; Price Drops</h2>`)
		drops := d.PriceDrops
		if len(drops) > digestMaxDrops {
			drops = drops[:digestMaxDrops]
		}
		for _, entry := range drops {
			prev := entry.WeekStartPrice
			b.WriteString(productCard{
				Name:          entry.Name,
				URL:           entry.URL,
				ImageURL:      entry.ImageURL,
				Currency:      entry.Currency,
				CurrentPrice:  entry.CurrentPrice,
				PreviousPrice: &prev,
				PercentOff:    -entry.PercentChange,
			}.render())
		}
	} else {
		b.WriteString(`<p style="color: #6b7280;">No price drops this week. We'll keep watching.</p>`)
	}

	if n := len(d.PriceIncreases); n > 0 {
		fmt.Fprintf(&b, `<p style="color: #6b7280; font-size: 14px;">%d of your products went up in price this week.</p>`, n)
	}

	b.WriteString(footer())
	return subject, wrapper(b.String(), fmt.Sprintf("%d price drops found. Total potential savings: $%.0f",
		len(d.PriceDrops), d.TotalSavings))
}
