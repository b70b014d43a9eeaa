package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codewithudo/quidax-market-summary/internal/models"
)

// SummaryCache guarda la última lista de resúmenes calculada
type SummaryCache interface {
	Get(ctx context.Context) ([]models.MarketSummary, bool, error)
	Set(ctx context.Context, summaries []models.MarketSummary) error
	Ping(ctx context.Context) string
}

// SummaryService obtiene los tickers de Quidax y los convierte en resúmenes
type SummaryService struct {
	fetcher TickerFetcher
	cache   SummaryCache
	logger  *slog.Logger
}

// NewSummaryService crea el servicio. cache puede ser nil, en ese caso
// cada llamada va directo a Quidax.
func NewSummaryService(fetcher TickerFetcher, cache SummaryCache, logger *slog.Logger) *SummaryService {
	return &SummaryService{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
	}
}

// GetMarketSummaries devuelve el resumen de todos los mercados
func (s *SummaryService) GetMarketSummaries(ctx context.Context) ([]models.MarketSummary, error) {
	if s.cache != nil {
		summaries, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("error leyendo la caché de resúmenes", "error", err)
		} else if ok {
			return summaries, nil
		}
	}

	return s.Refresh(ctx)
}

// Refresh consulta Quidax sin mirar la caché y guarda el resultado
func (s *SummaryService) Refresh(ctx context.Context) ([]models.MarketSummary, error) {
	tickers, err := s.fetcher.FetchTickers(ctx)
	if err != nil {
		return nil, err
	}

	summaries := BuildSummaries(tickers)

	if s.cache != nil {
		if err := s.cache.Set(ctx, summaries); err != nil {
			s.logger.Warn("error guardando la caché de resúmenes", "error", err)
		}
	}

	return summaries, nil
}

// GetMarketSummary busca un único mercado. Acepta "btc_ngn", "btcngn", "BTC-NGN", etc.
func (s *SummaryService) GetMarketSummary(ctx context.Context, market string) (models.MarketSummary, error) {
	summaries, err := s.GetMarketSummaries(ctx)
	if err != nil {
		return models.MarketSummary{}, err
	}

	want := marketKey(market)
	for _, summary := range summaries {
		if marketKey(summary.Market) == want {
			return summary, nil
		}
	}

	return models.MarketSummary{}, fmt.Errorf("%w: %s", ErrMarketNotFound, market)
}

// CacheStatus informa el estado de la caché para el endpoint de salud
func (s *SummaryService) CacheStatus(ctx context.Context) string {
	if s.cache == nil {
		return "disabled"
	}
	return s.cache.Ping(ctx)
}
