package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$1299.99", FormatPrice(1299.99, "USD"))
	assert.Equal(t, "£45.00", FormatPrice(45, "GBP"))
	assert.Equal(t, "CA$12.50", FormatPrice(12.5, "CAD"))
	assert.Equal(t, "¥1980", FormatPrice(1980, "JPY"))
	assert.Equal(t, "$9.99", FormatPrice(9.99, "XYZ"), "unknown currencies fall back to the dollar symbol")
}
