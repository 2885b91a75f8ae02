// Package marketdata fetches market snapshots from the Alpaca data API.
package marketdata

import (
	"context"
	stderrors "errors"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"pricewatch/internal/errors"
	"pricewatch/internal/models"
)

// AlpacaConfig holds the credentials for the Alpaca data API.
type AlpacaConfig struct {
	APIKey    string
	APISecret string
}

// AlpacaProvider implements the snapshot provider against Alpaca's
// stocks snapshot endpoint with a single batched request per cycle.
type AlpacaProvider struct {
	client *marketdata.Client
}

// NewAlpacaProvider creates an AlpacaProvider.
func NewAlpacaProvider(cfg AlpacaConfig) *AlpacaProvider {
	return &AlpacaProvider{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
		}),
	}
}

// Snapshots fetches the latest snapshot for every symbol in one batch call.
// The current price resolves to the latest trade price, falling back to the
// minute bar close; the previous close comes from the previous daily bar.
// Symbols Alpaca does not know are absent from the result.
func (p *AlpacaProvider) Snapshots(ctx context.Context, symbols []string) (map[string]models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := p.client.GetSnapshots(symbols, marketdata.GetSnapshotRequest{})
	if err != nil {
		var apiErr *alpaca.APIError
		if stderrors.As(err, &apiErr) {
			return nil, errors.NewUpstreamError("alpaca snapshots", apiErr.StatusCode, apiErr.Message, err)
		}
		return nil, errors.NewUpstreamError("alpaca snapshots", 0, "", err)
	}

	out := make(map[string]models.Snapshot, len(raw))
	for symbol, snap := range raw {
		if snap == nil {
			continue
		}
		out[models.NormalizeSymbol(symbol)] = convert(snap)
	}
	return out, nil
}

func convert(snap *marketdata.Snapshot) models.Snapshot {
	var price float64
	switch {
	case snap.LatestTrade != nil && snap.LatestTrade.Price > 0:
		price = snap.LatestTrade.Price
	case snap.MinuteBar != nil && snap.MinuteBar.Close > 0:
		price = snap.MinuteBar.Close
	default:
		return models.NoPrice()
	}

	if snap.PrevDailyBar != nil && snap.PrevDailyBar.Close > 0 {
		return models.PriceWithPrevClose(price, snap.PrevDailyBar.Close)
	}
	return models.PriceOnly(price)
}
