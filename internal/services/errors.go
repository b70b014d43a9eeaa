package services

import "errors"

var (
	// ErrNetwork indica que Quidax no respondió o respondió con un estado distinto de 2xx
	ErrNetwork = errors.New("quidax no disponible")
	// ErrParse indica que el cuerpo de la respuesta no tiene la forma esperada
	ErrParse = errors.New("respuesta de quidax inválida")
	// ErrMarketNotFound se devuelve cuando el mercado pedido no está en la lista de tickers
	ErrMarketNotFound = errors.New("mercado no encontrado")
)
