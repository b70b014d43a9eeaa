package services

import (
	"encoding/json"
	"fmt"

	"github.com/codewithudo/quidax-market-summary/internal/config"
	"github.com/codewithudo/quidax-market-summary/internal/models"
)

const statusSuccess = "success"

// TickerDecoder convierte el cuerpo de /markets/tickers en un mapa mercado -> ticker.
// Un ticker nil significa que el mercado vino sin datos.
type TickerDecoder interface {
	Decode(body []byte) (map[string]*models.Ticker, error)
}

// NewTickerDecoder devuelve el decodificador para el esquema configurado
func NewTickerDecoder(schema string) (TickerDecoder, error) {
	switch schema {
	case "", config.SchemaEnvelope:
		return EnvelopeDecoder{}, nil
	case config.SchemaFlat:
		return FlatDecoder{}, nil
	default:
		return nil, fmt.Errorf("esquema de quidax desconocido: %q", schema)
	}
}

// EnvelopeDecoder entiende la forma actual de la API:
// {"status":"success","data":{"btcngn":{"at":...,"ticker":{...}}}}
type EnvelopeDecoder struct{}

func (EnvelopeDecoder) Decode(body []byte) (map[string]*models.Ticker, error) {
	resp, err := models.UnmarshalQuidaxResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if resp.Status != statusSuccess {
		return nil, fmt.Errorf("%w: status %q: %s", ErrParse, resp.Status, resp.Message)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: falta el campo data", ErrParse)
	}

	tickers := make(map[string]*models.Ticker, len(resp.Data))
	for market, data := range resp.Data {
		if data == nil {
			tickers[market] = nil
			continue
		}
		tickers[market] = data.Ticker
	}

	return tickers, nil
}

// FlatDecoder entiende un mapa sin sobre, con o sin el objeto ticker anidado:
// {"btc_usdt":{"open":"...","last":"..."}} o {"btc_usdt":{"ticker":{...}}}
type FlatDecoder struct{}

func (FlatDecoder) Decode(body []byte) (map[string]*models.Ticker, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: respuesta vacía", ErrParse)
	}

	tickers := make(map[string]*models.Ticker, len(raw))
	for market, value := range raw {
		ticker, err := decodeFlatEntry(value)
		if err != nil {
			return nil, fmt.Errorf("%w: mercado %s: %w", ErrParse, market, err)
		}
		tickers[market] = ticker
	}

	return tickers, nil
}

func decodeFlatEntry(value json.RawMessage) (*models.Ticker, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(value, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, nil
	}

	if nested, ok := fields["ticker"]; ok {
		var ticker *models.Ticker
		if err := json.Unmarshal(nested, &ticker); err != nil {
			return nil, err
		}
		return ticker, nil
	}

	var ticker models.Ticker
	if err := json.Unmarshal(value, &ticker); err != nil {
		return nil, err
	}
	return &ticker, nil
}
