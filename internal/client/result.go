package client

// ExtractionResult is the scraping engine's one output contract, shared by
// the manual check, the bulk actions and the sweep. A fetch that came back
// but yielded no usable fields is still Success: extractors report partial
// results, they do not fail. The JSON field names are load-bearing: the
// extension and the web client both decode them.
type ExtractionResult struct {
	Success  bool     `json:"success"`
	Name     string   `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Retailer string   `json:"retailer,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func extractionFailure(errMsg string) ExtractionResult {
	return ExtractionResult{Success: false, Error: errMsg}
}

func (r *ExtractionResult) setPrice(p float64) {
	r.Price = &p
}
