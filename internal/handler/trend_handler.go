package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoldFish88/pollmph/internal/model"
	"github.com/GoldFish88/pollmph/pkg/trend"
	"github.com/gin-gonic/gin"
)

type SentimentStore interface {
	GetSeries(propositionID string) ([]model.Sentiment, error)
	GetAllSeries() ([]model.Sentiment, error)
}

type TrendHandler struct {
	repository SentimentStore
}

func NewTrendHandler(repository SentimentStore) *TrendHandler {
	return &TrendHandler{repository: repository}
}

func (h *TrendHandler) GetTrend(c *gin.Context) {
	id := c.Param("id")
	window := getQueryWindow(c)

	sentiments, err := h.repository.GetSeries(id)
	if err != nil {
		slog.Error("error fetching sentiment series", "error", err, "proposition_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	points, err := trend.Smooth(toObservations(sentiments), window)
	if err != nil {
		if errors.Is(err, trend.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window"})
			return
		}
		slog.Error("error smoothing series", "error", err, "proposition_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Smoothing error"})
		return
	}

	c.JSON(http.StatusOK, toTrendResponse(id, window, points))
}

func (h *TrendHandler) GetTrends(c *gin.Context) {
	window := getQueryWindow(c)

	sentiments, err := h.repository.GetAllSeries()
	if err != nil {
		slog.Error("error fetching sentiment series", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	groups, err := trend.SmoothAll(toObservations(sentiments), window)
	if err != nil {
		if errors.Is(err, trend.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window"})
			return
		}
		slog.Error("error smoothing series", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Smoothing error"})
		return
	}

	res := TrendsResponse{
		Window: window,
		Trends: []TrendResponse{},
	}
	for id, points := range groups {
		res.Trends = append(res.Trends, toTrendResponse(id, window, points))
	}

	c.JSON(http.StatusOK, res)
}

func (h *TrendHandler) GetSentiments(c *gin.Context) {
	id := c.Param("id")

	sentiments, err := h.repository.GetSeries(id)
	if err != nil {
		slog.Error("error fetching sentiment series", "error", err, "proposition_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := SentimentSeriesResponse{
		PropositionID: id,
		Sentiments:    []SentimentResponse{},
		Total:         len(sentiments),
	}
	for _, s := range sentiments {
		res.Sentiments = append(res.Sentiments, SentimentResponse{
			Date:               s.DateGenerated.Format("2006-01-02"),
			ConsensusValue:     s.ConsensusValue,
			AttentionValue:     s.AttentionValue,
			MovementAnalysis:   s.MovementAnalysis,
			RationaleConsensus: s.RationaleConsensus,
			RationaleAttention: s.RationaleAttention,
			DataQuality:        s.DataQuality,
			ModelUsed:          s.ModelUsed,
			PromptVersion:      s.PromptVersion,
		})
	}

	c.JSON(http.StatusOK, res)
}

func toObservations(sentiments []model.Sentiment) []trend.Observation {
	observations := make([]trend.Observation, len(sentiments))
	for i, s := range sentiments {
		observations[i] = trend.Observation{
			PropositionID:      s.PropositionID,
			Date:               s.DateGenerated,
			ConsensusValue:     s.ConsensusValue,
			AttentionValue:     s.AttentionValue,
			MovementAnalysis:   s.MovementAnalysis,
			RationaleConsensus: s.RationaleConsensus,
			RationaleAttention: s.RationaleAttention,
			DataQuality:        s.DataQuality,
		}
	}
	return observations
}

func toTrendResponse(propositionID string, window int, points []trend.SmoothedPoint) TrendResponse {
	res := TrendResponse{
		PropositionID: propositionID,
		Window:        window,
		Points:        []TrendPointResponse{},
		Total:         len(points),
	}
	for _, p := range points {
		res.Points = append(res.Points, TrendPointResponse{
			Date:               p.Date.Format("2006-01-02"),
			ConsensusValue:     p.ConsensusValue,
			AttentionValue:     p.AttentionValue,
			SmoothedConsensus:  p.SmoothedConsensus,
			SmoothedAttention:  p.SmoothedAttention,
			Majority:           p.Majority(),
			MovementAnalysis:   p.MovementAnalysis,
			RationaleConsensus: p.RationaleConsensus,
			RationaleAttention: p.RationaleAttention,
			DataQuality:        p.DataQuality,
		})
	}
	return res
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

// getQueryWindow does not clamp: a window below 1 is a caller bug and is
// rejected by the smoother with a 400 rather than silently corrected.
func getQueryWindow(c *gin.Context) int {
	return getQueryInt("window", trend.DefaultWindow, c)
}
