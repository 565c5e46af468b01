package ledger

//go:generate go run go.uber.org/mock/mockgen -source=./ledger.go -destination=./mocks/ledger_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"fancall/config"
	"fancall/infras/otel"
	"fancall/shared/constant"
)

const (
	otelAttrUserID    = "user_id"
	otelAttrBookingID = "booking_id"
)

// Ledger talks to the token-ledger service that tracks fan balances and
// deposit holds.
type Ledger interface {
	GetBalance(ctx context.Context, userID string) (int, error)
	ReleaseDepositTokens(ctx context.Context, bookingID string) error
}

type ledgerImpl struct {
	client *http.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Ledger {
	return &ledgerImpl{
		client: &http.Client{
			Timeout: time.Duration(cfg.External.Ledger.TimeoutSeconds) * time.Second,
		},
		cfg:  cfg,
		otel: otel,
	}
}

func (svc *ledgerImpl) GetBalance(ctx context.Context, userID string) (balance int, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelLedgerScopeName, constant.OtelLedgerScopeName+".GetBalance")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrUserID: userID,
	})

	url := fmt.Sprintf("%s/balances/%s", svc.cfg.External.Ledger.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build balance request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderAPIKey, svc.cfg.External.Ledger.APIKey)

	resp, err := svc.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("failed to fetch token balance")

		return 0, fmt.Errorf("failed to fetch token balance: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ledger returned status %d for balance of user %s", resp.StatusCode, userID)
	}

	var body struct {
		Balance int `json:"balance"`
	}

	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode balance response: %w", err)
	}

	return body.Balance, nil
}

func (svc *ledgerImpl) ReleaseDepositTokens(ctx context.Context, bookingID string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelLedgerScopeName, constant.OtelLedgerScopeName+".ReleaseDepositTokens")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrBookingID: bookingID,
	})

	payload, err := json.Marshal(map[string]string{"booking_id": bookingID})
	if err != nil {
		return fmt.Errorf("failed to encode release request: %w", err)
	}

	url := fmt.Sprintf("%s/deposits/release", svc.cfg.External.Ledger.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build release request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAPIKey, svc.cfg.External.Ledger.APIKey)

	resp, err := svc.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("bookingId", bookingID).Msg("failed to release deposit tokens")

		return fmt.Errorf("failed to release deposit tokens: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("ledger returned status %d releasing deposit for booking %s", resp.StatusCode, bookingID)
	}

	return nil
}
