package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

var ErrResendNotConfigured = errors.New("Resend API key not configured")

type ResendSendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type ResendSendResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}

// ResendSendEmail delivers an email through the Resend HTTP API and returns
// the provider's message ID.
func (c Client) ResendSendEmail(to []string, subject string, html string) (string, error) {
	if c.ResendAPIKey == "" {
		return "", ErrResendNotConfigured
	}
	sendReq := ResendSendRequest{
		From:    c.EmailFrom,
		To:      to,
		Subject: subject,
		HTML:    html,
	}
	reqBody, err := json.Marshal(sendReq)
	if err != nil {
		return "", errors.Wrapf(err, "ResendSendEmail: ResendSendRequest JSON marshalling error, req: %+v", sendReq)
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(reqBody))
	if err != nil {
		return "", errors.Wrapf(err, "ResendSendEmail: error creating HTTP request from body: %s", reqBody)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ResendAPIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "ResendSendEmail: error doing request: %+v", req)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.Logger.Errorf("ResendSendEmail: error closing response body, req: %+v, err: %v", req, err)
		}
	}()

	respBody, err := io.ReadAll(http.MaxBytesReader(nil, resp.Body, 300000))
	if err != nil {
		return "", errors.Wrapf(err, "ResendSendEmail: error reading ResendAPI response body, req: %+v", req)
	}
	sendResp := ResendSendResponse{}
	if err = json.Unmarshal(respBody, &sendResp); err != nil {
		return "", errors.Wrapf(err,
			"ResendSendEmail: error unmarshalling ResendAPI response body, status: %s, body: %s", resp.Status, respBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || sendResp.Error != nil {
		return "", errors.Errorf("ResendSendEmail: ResendAPI returned error, status: %s, body: %s", resp.Status, respBody)
	}
	return sendResp.ID, nil
}
