package delivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/capitalsuccesshub-maker/property-scout/config"
	"github.com/capitalsuccesshub-maker/property-scout/internal/scraper"
	"github.com/capitalsuccesshub-maker/property-scout/logger"
	"github.com/capitalsuccesshub-maker/property-scout/pkg/errors"
)

// entityName is the remote collection receiving property records
const entityName = "BienImmobilier"

// responseBodyLimit bounds how much of an error response gets logged
const responseBodyLimit = 2048

var _ Sink = (*Base44Sink)(nil)

// Base44Sink posts records to the Base44 entity API, one POST per
// record with a bearer token
type Base44Sink struct {
	client   *http.Client
	endpoint string
	apiKey   string
	log      *logger.Logger
}

// NewBase44Sink creates a sink for the configured Base44 application
func NewBase44Sink(cfg *config.Config, log *logger.Logger) *Base44Sink {
	endpoint := fmt.Sprintf("%s/api/apps/%s/entities/%s",
		strings.TrimSuffix(cfg.Base44BaseURL, "/"), cfg.Base44AppID, entityName)

	return &Base44Sink{
		client:   &http.Client{Timeout: cfg.DeliveryTimeout},
		endpoint: endpoint,
		apiKey:   cfg.Base44APIKey,
		log:      log.ForComponent("base44"),
	}
}

// Deliver submits one record. Statuses 200 and 201 count as success;
// anything else is an error carrying the response body.
func (s *Base44Sink) Deliver(record scraper.PropertyRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return errors.NewDelivery("encode", "failed to encode record", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.NewDelivery("request", "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.NewDelivery("post", "failed to reach delivery endpoint", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
		message := fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return errors.NewDelivery("post", message, nil)
	}

	s.log.Debug().Str("title", record.Title).Msg("Delivered record")
	return nil
}

// Close is a no-op; the underlying HTTP client needs no shutdown
func (s *Base44Sink) Close() error {
	return nil
}
