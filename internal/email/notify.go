package email

import (
	"fmt"
	"html"
	"strings"

	"priceghost/internal/misc"
	"priceghost/internal/model"
)

// Welcome renders the signup greeting mail.
func Welcome(userName string) (subject string, body string) {
	subject = "\U0001F47B Welcome to PriceGhost - Let's save some money!"

	greeting := "Welcome"
	if userName != "" {
		greeting = "Welcome, " + html.EscapeString(userName)
	}
	var b strings.Builder
	b.WriteString(header())
	fmt.Fprintf(&b, `<h2 style="font-size: 20px; margin: 0 0 12px 0;">%s!</h2>`, greeting)
	b.WriteString(`<p style="font-size: 16px;">PriceGhost watches the prices of products you track and tells you when they drop.</p>`)
	b.WriteString(`<ol style="font-size: 15px; color: #374151;">` +
		`<li>Paste a product URL to start tracking it</li>` +
		`<li>Set a target price if you have one in mind</li>` +
		`<li>We check prices for you and alert you on drops</li>` +
		`</ol>`)
	fmt.Fprintf(&b, `<p style="text-align: center; margin: 24px 0;"><a href="https://priceghost.app" style="%s">Start Tracking</a></p>`, styleButton)
	b.WriteString(footer())
	return subject, wrapper(b.String(), "Track prices, catch drops, save money.")
}

// PriceDrop renders the mail sent alongside a price-drop or target-reached
// alert.
func PriceDrop(p model.Product, oldPrice float64, newPrice float64) (subject string, body string) {
	savings := oldPrice - newPrice
	percentOff := 0.0
	if oldPrice > 0 {
		percentOff = savings / oldPrice * 100
	}
	subject = fmt.Sprintf("\U0001F389 Price Drop: Save %s on %s",
		model.FormatPrice(savings, p.Currency), misc.StringLimit(p.Name, 40))

	var b strings.Builder
	b.WriteString(header())
	b.WriteString(`<h2 style="font-size: 20px; margin: 0 0 12px 0;">A product you're tracking just dropped in price</h2>`)
	b.WriteString(productCard{
		Name:          p.Name,
		URL:           p.URL,
		ImageURL:      p.ImageURL,
		Currency:      p.Currency,
		CurrentPrice:  newPrice,
		PreviousPrice: &oldPrice,
		PercentOff:    percentOff,
		Highlight:     true,
	}.render())
	if p.TargetPrice != nil && newPrice <= *p.TargetPrice {
		fmt.Fprintf(&b, `<p style="color: #166534; font-weight: 600;">&#127919; Your target price of %s has been reached!</p>`,
			model.FormatPrice(*p.TargetPrice, p.Currency))
	}
	b.WriteString(footer())
	return subject, wrapper(b.String(), fmt.Sprintf("Save %s (%.0f%% off) on %s",
		model.FormatPrice(savings, p.Currency), percentOff, p.Name))
}
