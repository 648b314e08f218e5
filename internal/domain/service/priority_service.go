package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"complainhub/internal/domain/entity"
	"complainhub/pkg/logger"
)

// PriorityService calls the external complaint-priority model API. The API is
// an opaque collaborator; any failure leaves the caller on its default
// priority.
type PriorityService struct {
	apiURL     string
	httpClient *http.Client
}

func NewPriorityService(apiURL string) *PriorityService {
	return &PriorityService{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type classifyRequest struct {
	Complaint string `json:"complaint"`
}

type classifyResponse struct {
	Priority string `json:"priority"`
}

func (s *PriorityService) Classify(ctx context.Context, text string) (entity.Priority, error) {
	body, err := json.Marshal(classifyRequest{Complaint: text})
	if err != nil {
		return "", fmt.Errorf("failed to encode classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("priority API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		logger.Warn("Priority API returned %d: %s", resp.StatusCode, string(raw))
		return "", fmt.Errorf("priority API returned status %d", resp.StatusCode)
	}

	var result classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode classify response: %w", err)
	}

	priority := entity.Priority(strings.ToLower(result.Priority))
	switch priority {
	case entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh:
		return priority, nil
	}
	return "", fmt.Errorf("priority API returned unknown priority %q", result.Priority)
}
