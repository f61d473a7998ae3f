package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/model"
)

func TestRunWeeklyDigest(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC) // a Monday
	recentSend := primitive.NewDateTimeFromTime(now.Add(-24 * time.Hour))

	fs := newFakeStore()
	due := fs.addUser(model.User{
		Name: "Sam", Email: "sam@example.com",
		Preferences: model.Preferences{DigestEnabled: true, DigestDay: "monday"},
	})
	alreadySent := fs.addUser(model.User{
		Name: "Ada", Email: "ada@example.com",
		Preferences: model.Preferences{DigestEnabled: true, DigestDay: "monday", LastDigestSent: &recentSend},
	})
	fs.addUser(model.User{
		Name: "Fred", Email: "fred@example.com",
		Preferences: model.Preferences{DigestEnabled: true, DigestDay: "friday"},
	})
	fs.addProduct(model.Product{
		UserID: due.ID, URL: "https://shop.example.com/p/1", Name: "Widget", Currency: "USD",
		CurrentPrice: floatPtr(90), OriginalPrice: 100, Active: true,
	})
	fs.addProduct(model.Product{
		UserID: alreadySent.ID, URL: "https://shop.example.com/p/2", Name: "Gadget", Currency: "USD",
		CurrentPrice: floatPtr(40), OriginalPrice: 40, Active: true,
	})

	s := newTestServer(fs)
	stats, err := s.RunWeeklyDigest(context.Background(), now)
	require.NoError(t, err)

	// Only the Monday users are processed. Ada was digested yesterday and
	// Sam is skipped because the sender is not configured, so nothing is
	// sent and nothing errors.
	assert.Equal(t, DigestStats{Processed: 2, Skipped: 2}, stats)
	assert.Empty(t, fs.emailLogs)
	assert.Nil(t, fs.users[due.ID].Preferences.LastDigestSent)
}
