package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/codewithudo/quidax-market-summary/internal/models"
)

const tickersPath = "/api/v1/markets/tickers"

// TickerFetcher obtiene los tickers de todos los mercados
type TickerFetcher interface {
	FetchTickers(ctx context.Context) (map[string]*models.Ticker, error)
}

// QuidaxClient hace la petición GET a la API pública de Quidax
type QuidaxClient struct {
	url        string
	httpClient *http.Client
	decoder    TickerDecoder
	logger     *slog.Logger
}

var _ TickerFetcher = (*QuidaxClient)(nil)

func NewQuidaxClient(baseURL string, timeout time.Duration, decoder TickerDecoder, logger *slog.Logger) *QuidaxClient {
	return &QuidaxClient{
		url:        baseURL + tickersPath,
		httpClient: &http.Client{Timeout: timeout},
		decoder:    decoder,
		logger:     logger,
	}
}

func (c *QuidaxClient) FetchTickers(ctx context.Context) (map[string]*models.Ticker, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("error haciendo la petición a quidax", "url", c.url, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("quidax respondió con error", "url", c.url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: estado %d", ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("error leyendo la respuesta de quidax", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	tickers, err := c.decoder.Decode(body)
	if err != nil {
		c.logger.Error("error decodificando la respuesta de quidax", "error", err)
		return nil, err
	}

	c.logger.Debug("tickers obtenidos de quidax", "markets", len(tickers), "elapsed", time.Since(start))
	return tickers, nil
}
