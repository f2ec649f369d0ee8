package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"crackthechain/internal/platform/config"

	"github.com/rs/zerolog/log"
)

// Message is the outbound email contract: recipient, subject and an HTML body.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type apiRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
}

type apiResponse struct {
	ID string `json:"id"`
}

type apiError struct {
	Message string `json:"message"`
}

// Sender delivers email through the configured HTTP mail API.
type Sender struct {
	client *http.Client
}

func NewSender() *Sender {
	return &Sender{client: &http.Client{Timeout: 15 * time.Second}}
}

func (s *Sender) Send(ctx context.Context, msg Message) error {
	payload := apiRequest{
		From:    config.AppConfig.MailFromAddress,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.MailAPIURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create mail API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.MailAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to mail API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read mail API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiError
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("mail API error (status %d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("mail API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var emailResp apiResponse
	if err := json.Unmarshal(respBody, &emailResp); err != nil {
		log.Warn().Err(err).Msg("Failed to parse mail API response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResp.ID).Str("to", msg.To).Msg("Email sent")
	}
	return nil
}
