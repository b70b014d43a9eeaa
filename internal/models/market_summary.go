package models

// MarketSummary es el registro simplificado que expone la API
type MarketSummary struct {
	Market             string `json:"market"`
	Price              string `json:"price"`
	Volume             string `json:"volume"`
	High               string `json:"high"`
	Low                string `json:"low"`
	PriceChangePercent string `json:"priceChangePercent"`
}
