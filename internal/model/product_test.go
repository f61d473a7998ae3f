package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestApplyPriceFirstObservation(t *testing.T) {
	p := Product{OriginalPrice: 100}

	changed := p.ApplyPrice(90)
	assert.True(t, changed)
	require.NotNil(t, p.CurrentPrice)
	assert.Equal(t, 90.0, *p.CurrentPrice)
	assert.Equal(t, 90.0, *p.LowestPrice)
	assert.Equal(t, 90.0, *p.HighestPrice)
	assert.NotNil(t, p.LastChecked)
}

func TestApplyPriceUnchanged(t *testing.T) {
	p := Product{
		CurrentPrice: floatPtr(50),
		LowestPrice:  floatPtr(40),
		HighestPrice: floatPtr(60),
	}

	changed := p.ApplyPrice(50)
	assert.False(t, changed)
	assert.Equal(t, 40.0, *p.LowestPrice)
	assert.Equal(t, 60.0, *p.HighestPrice)
	assert.NotNil(t, p.LastChecked, "last checked is touched even without a change")
}

func TestApplyPriceTightensBounds(t *testing.T) {
	p := Product{
		CurrentPrice: floatPtr(50),
		LowestPrice:  floatPtr(40),
		HighestPrice: floatPtr(60),
	}

	assert.True(t, p.ApplyPrice(35))
	assert.Equal(t, 35.0, *p.LowestPrice)
	assert.Equal(t, 60.0, *p.HighestPrice)

	assert.True(t, p.ApplyPrice(70))
	assert.Equal(t, 35.0, *p.LowestPrice)
	assert.Equal(t, 70.0, *p.HighestPrice)

	// Bounds only widen toward the extremes, never shrink back.
	assert.True(t, p.ApplyPrice(45))
	assert.Equal(t, 35.0, *p.LowestPrice)
	assert.Equal(t, 70.0, *p.HighestPrice)
	assert.Equal(t, 45.0, *p.CurrentPrice)
}
