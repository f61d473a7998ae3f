package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testProduct(targetPrice *float64) Product {
	return Product{
		ID:          primitive.NewObjectID(),
		UserID:      primitive.NewObjectID(),
		Name:        "Mechanical Keyboard",
		Currency:    "USD",
		TargetPrice: targetPrice,
	}
}

func TestAlertsForChangeDropBelowTarget(t *testing.T) {
	p := testProduct(floatPtr(80))

	alerts := AlertsForChange(p, 100, 75)
	require.Len(t, alerts, 2)

	assert.Equal(t, AlertTypePriceDrop, alerts[0].AlertType)
	assert.Equal(t, 100.0, alerts[0].OldPrice)
	assert.Equal(t, 75.0, alerts[0].NewPrice)
	assert.Contains(t, alerts[0].Message, "$100.00")
	assert.Contains(t, alerts[0].Message, "$75.00")
	assert.Contains(t, alerts[0].Message, "Mechanical Keyboard")

	assert.Equal(t, AlertTypeTargetReached, alerts[1].AlertType)
	assert.Contains(t, alerts[1].Message, "$80.00")
	for _, a := range alerts {
		assert.Equal(t, p.UserID, a.UserID)
		assert.Equal(t, p.ID, a.ProductID)
		assert.False(t, a.Read)
	}
}

func TestAlertsForChangeDropAboveTarget(t *testing.T) {
	p := testProduct(floatPtr(80))

	alerts := AlertsForChange(p, 100, 90)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertTypePriceDrop, alerts[0].AlertType)
}

func TestAlertsForChangeDropExactlyAtTarget(t *testing.T) {
	p := testProduct(floatPtr(80))

	alerts := AlertsForChange(p, 100, 80)
	require.Len(t, alerts, 2)
	assert.Equal(t, AlertTypeTargetReached, alerts[1].AlertType)
}

func TestAlertsForChangeNoDrop(t *testing.T) {
	p := testProduct(floatPtr(80))

	assert.Nil(t, AlertsForChange(p, 100, 100))
	assert.Nil(t, AlertsForChange(p, 100, 110))
}

func TestAlertsForChangeNoTargetSet(t *testing.T) {
	p := testProduct(nil)

	alerts := AlertsForChange(p, 100, 10)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertTypePriceDrop, alerts[0].AlertType)
}
