package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/client"
	"priceghost/internal/database"
	"priceghost/internal/email"
	"priceghost/internal/model"
)

const digestWindow = 7 * 24 * time.Hour

type DigestStats struct {
	Processed int `json:"processed"`
	Sent      int `json:"sent"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// WeeklyDigestInInterval checks once per tick whether any users are due
// their weekly report. Ticking daily is enough, the per-user guard makes
// extra runs harmless.
func (s Server) WeeklyDigestInInterval(ctx context.Context, ticker *time.Ticker) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunWeeklyDigest(ctx, time.Now()); err != nil {
				s.Logger.Errorf("WeeklyDigestInInterval: Digest run failed, err: %v", err)
			}
		}
	}
}

// RunWeeklyDigest sends the weekly price report to every user whose digest
// day matches now's weekday. Users digested within the past week are
// skipped, so a rerun on the same day cannot double-send.
func (s Server) RunWeeklyDigest(ctx context.Context, now time.Time) (DigestStats, error) {
	var stats DigestStats
	day := strings.ToLower(now.Weekday().String())
	windowStart := now.Add(-digestWindow)
	s.Logger.Infof("RunWeeklyDigest: Starting digest run for %s", day)

	us, err := s.DB.UsersFindDigestEnabled(ctx)
	if err != nil {
		s.Logger.Errorf("RunWeeklyDigest: Error getting digest-enabled Users from DB, err: %v", err)
		return stats, err
	}

	for _, u := range us {
		if u.Preferences.DigestDay != day {
			continue
		}
		stats.Processed++

		if u.Preferences.LastDigestSent != nil && u.Preferences.LastDigestSent.Time().After(windowStart) {
			s.Logger.Debugf("RunWeeklyDigest: Already digested this week, UserID: %s", u.ID.Hex())
			stats.Skipped++
			continue
		}

		ps, err := s.DB.ProductsFindByUser(ctx, u.ID)
		if err != nil {
			s.Logger.Errorf("RunWeeklyDigest: Error getting Products for UserID: %s, err: %v", u.ID.Hex(), err)
			stats.Errors++
			continue
		}
		active := ps[:0]
		for _, p := range ps {
			if p.Active {
				active = append(active, p)
			}
		}
		if len(active) == 0 {
			s.Logger.Debugf("RunWeeklyDigest: No active Products, UserID: %s", u.ID.Hex())
			stats.Skipped++
			continue
		}

		s.digestForUser(ctx, &stats, u, active, windowStart)
	}

	s.Logger.Infof("RunWeeklyDigest: Digest run done, processed: %d, sent: %d, skipped: %d, errors: %d",
		stats.Processed, stats.Sent, stats.Skipped, stats.Errors)
	return stats, nil
}

func (s Server) digestForUser(
	ctx context.Context, stats *DigestStats, u model.User, products []model.Product, windowStart time.Time,
) {
	productIDs := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	observations, err := s.DB.PriceObservationsFindSince(ctx, productIDs, windowStart)
	if err != nil {
		s.Logger.Errorf("RunWeeklyDigest: Error getting PriceObservations for UserID: %s, err: %v", u.ID.Hex(), err)
		stats.Errors++
		return
	}

	digest := model.BuildDigest(products, observations, windowStart)
	subject, body := email.WeeklyDigest(u.Name, digest)

	msgID, err := s.Client.ResendSendEmail([]string{u.Email}, subject, body)
	if errors.Is(err, client.ErrResendNotConfigured) {
		s.Logger.Debugf("RunWeeklyDigest: Skipping digest for UserID: %s, sender not configured", u.ID.Hex())
		stats.Skipped++
		return
	}
	if err != nil {
		s.Logger.Errorf("RunWeeklyDigest: Error sending digest email to UserID: %s, err: %v", u.ID.Hex(), err)
		if logErr := s.DB.EmailLogInsert(ctx, database.EmailLog{
			UserID:    u.ID,
			EmailType: database.EmailTypeWeeklyDigest,
			Subject:   subject,
			Error:     err.Error(),
		}); logErr != nil {
			s.Logger.Errorf("RunWeeklyDigest: Error inserting EmailLog, err: %v", logErr)
		}
		stats.Errors++
		return
	}

	if err = s.DB.UserSetLastDigestSent(ctx, u.ID, time.Now()); err != nil {
		s.Logger.Errorf("RunWeeklyDigest: Error setting last digest sent for UserID: %s, err: %v", u.ID.Hex(), err)
	}
	if err = s.DB.EmailLogInsert(ctx, database.EmailLog{
		UserID:    u.ID,
		EmailType: database.EmailTypeWeeklyDigest,
		Subject:   subject,
		MessageID: msgID,
	}); err != nil {
		s.Logger.Errorf("RunWeeklyDigest: Error inserting EmailLog, err: %v", err)
	}
	stats.Sent++
	s.Logger.Infof("RunWeeklyDigest: Sent digest to UserID: %s, %d drops, MessageID: %s",
		u.ID.Hex(), len(digest.PriceDrops), msgID)
}

func (s Server) cronWeeklyDigest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.RunWeeklyDigest(r.Context(), time.Now())
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		s.writeJsonResponse(w, stats, http.StatusOK)
	}
}
