package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func UnmarshalQuidaxResponse(data []byte) (QuidaxResponse, error) {
	var r QuidaxResponse
	err := json.Unmarshal(data, &r)
	return r, err
}

// QuidaxResponse es el sobre que devuelve /api/v1/markets/tickers
type QuidaxResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]*MarketData `json:"data"`
}

// MarketData agrupa el ticker de un mercado junto con la marca de tiempo del exchange
type MarketData struct {
	At     int64   `json:"at,omitempty"`
	Ticker *Ticker `json:"ticker"`
}

// Ticker contiene los valores del exchange tal como llegan, sin convertir a float
type Ticker struct {
	Buy    Amount `json:"buy,omitempty"`
	Sell   Amount `json:"sell,omitempty"`
	Open   Amount `json:"open"`
	Low    Amount `json:"low"`
	High   Amount `json:"high"`
	Price  Amount `json:"last"`
	Volume Amount `json:"vol"`
}

// Amount guarda el literal decimal del exchange. Acepta tanto "123.45"
// como 123.45 en el JSON y conserva el texto original.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("valor no numérico %s: %w", data, err)
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

func (a Amount) String() string {
	return string(a)
}
