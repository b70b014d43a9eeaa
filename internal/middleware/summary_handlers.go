package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/codewithudo/quidax-market-summary/internal/models"
	"github.com/codewithudo/quidax-market-summary/internal/services"
	"github.com/gin-gonic/gin"
)

// SummaryProvider es lo que los handlers necesitan del servicio de resúmenes
type SummaryProvider interface {
	GetMarketSummaries(ctx context.Context) ([]models.MarketSummary, error)
	GetMarketSummary(ctx context.Context, market string) (models.MarketSummary, error)
	CacheStatus(ctx context.Context) string
}

type SummaryHandler struct {
	summaries SummaryProvider
}

func NewSummaryHandler(summaries SummaryProvider) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// GetSummaries devuelve el resumen de todos los mercados
func (h *SummaryHandler) GetSummaries(c *gin.Context) {
	summaries, err := h.summaries.GetMarketSummaries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetSummary devuelve el resumen de un mercado, por ejemplo /api/v1/summary/btc_ngn
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaries.GetMarketSummary(c.Request.Context(), c.Param("market"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SummaryHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "up",
		"cache":  h.summaries.CacheStatus(c.Request.Context()),
	})
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, services.ErrMarketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Mercado no encontrado"})
	case errors.Is(err, services.ErrNetwork):
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo contactar a Quidax"})
	case errors.Is(err, services.ErrParse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Respuesta inválida de Quidax"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener los resúmenes"})
	}
}
