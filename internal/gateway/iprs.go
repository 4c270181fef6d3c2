package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// IdentityRecord is the subset of the population-registry response the
// approval flow cares about.
type IdentityRecord struct {
	IDNumber    string `json:"id_number"`
	IDType      string `json:"id_type"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	Valid       bool   `json:"valid"`
}

// IdentityVerifier looks up an identity document against the national
// population registry.
type IdentityVerifier interface {
	Verify(ctx context.Context, idNumber, idType string) (*IdentityRecord, error)
}

type iprsClient struct {
	client *resty.Client
	log    *zap.Logger
}

func NewIdentityVerifier(baseURL, apiKey string, log *zap.Logger) IdentityVerifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("x-api-key", apiKey).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &iprsClient{
		client: client,
		log:    log.With(zap.String("gateway", "iprs")),
	}
}

func (c *iprsClient) Verify(ctx context.Context, idNumber, idType string) (*IdentityRecord, error) {
	var record IdentityRecord

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id_number": idNumber,
			"id_type":   idType,
		}).
		SetResult(&record).
		Get("/identity/verify")

	if err != nil {
		c.log.Error("Identity lookup request failed",
			zap.Error(err),
			zap.String("id_type", idType),
		)
		return nil, fmt.Errorf("identity lookup: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("identity lookup: %w", ErrRecordNotFound)
	}
	if resp.IsError() {
		c.log.Error("Identity lookup returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("id_type", idType),
		)
		return nil, fmt.Errorf("identity lookup: upstream status %d", resp.StatusCode())
	}

	return &record, nil
}
