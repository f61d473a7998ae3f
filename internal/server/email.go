package server

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"priceghost/internal/client"
	"priceghost/internal/database"
	"priceghost/internal/email"
	"priceghost/internal/model"
)

const emailSendTimeout = 30 * time.Second

// sendEmail delivers one mail and records the outcome in the email log.
// An unconfigured sender is a silent no-op so local setups work without
// Resend credentials.
func (s Server) sendEmail(userID primitive.ObjectID, to string, emailType string, subject string, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), emailSendTimeout)
	defer cancel()

	msgID, err := s.Client.ResendSendEmail([]string{to}, subject, body)
	if errors.Is(err, client.ErrResendNotConfigured) {
		s.Logger.Debugf("sendEmail: Skipping %s email to UserID: %s, sender not configured", emailType, userID.Hex())
		return
	}
	el := database.EmailLog{
		UserID:    userID,
		EmailType: emailType,
		Subject:   subject,
		MessageID: msgID,
	}
	if err != nil {
		s.Logger.Errorf("sendEmail: Error sending %s email to UserID: %s, err: %v", emailType, userID.Hex(), err)
		el.Error = err.Error()
	} else {
		s.Logger.Infof("sendEmail: Sent %s email to UserID: %s, MessageID: %s", emailType, userID.Hex(), msgID)
	}
	if err = s.DB.EmailLogInsert(ctx, el); err != nil {
		s.Logger.Errorf("sendEmail: Error inserting EmailLog, err: %v", err)
	}
}

func (s Server) sendWelcomeEmail(userID primitive.ObjectID, userName string, to string) {
	subject, body := email.Welcome(userName)
	s.sendEmail(userID, to, database.EmailTypeWelcome, subject, body)
}

func (s Server) sendPriceDropEmail(p model.Product, to string, oldPrice float64, newPrice float64) {
	subject, body := email.PriceDrop(p, oldPrice, newPrice)
	s.sendEmail(p.UserID, to, database.EmailTypePriceDrop, subject, body)
}
