package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SMSClient is a thin JSON client for the external SMS gateway.
type SMSClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSMSClient(baseURL, apiKey string) *SMSClient {
	return &SMSClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (c *SMSClient) Send(phone, message string) error {
	if c.baseURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	body, err := json.Marshal(smsRequest{To: phone, Message: message})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned %d", resp.StatusCode)
	}
	return nil
}
