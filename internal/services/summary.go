package services

import (
	"sort"
	"strings"

	"github.com/codewithudo/quidax-market-summary/internal/models"
)

// NormalizeMarket convierte "btc_ngn" en "BTC/NGN"
func NormalizeMarket(market string) string {
	return strings.ToUpper(strings.ReplaceAll(market, "_", "/"))
}

// BuildSummaries transforma los tickers de Quidax en resúmenes ordenados por mercado.
// Los mercados sin ticker se omiten.
func BuildSummaries(tickers map[string]*models.Ticker) []models.MarketSummary {
	summaries := make([]models.MarketSummary, 0, len(tickers))

	for market, ticker := range tickers {
		if ticker == nil {
			continue
		}

		summaries = append(summaries, models.MarketSummary{
			Market:             NormalizeMarket(market),
			Price:              ticker.Price.String(),
			Volume:             ticker.Volume.String(),
			High:               ticker.High.String(),
			Low:                ticker.Low.String(),
			PriceChangePercent: PriceChangePercent(ticker.Price.String(), ticker.Open.String()),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Market < summaries[j].Market
	})

	return summaries
}

// marketKey reduce un identificador a letras minúsculas para comparar
// "btc_ngn", "BTC/NGN", "btc-ngn" y "btcngn" como el mismo mercado.
func marketKey(market string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '/', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(market))
}
