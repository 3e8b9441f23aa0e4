package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GoldFish88/pollmph/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeSentimentStore struct {
	series    []model.Sentiment
	allSeries []model.Sentiment
	err       error
}

func (f *fakeSentimentStore) GetSeries(propositionID string) ([]model.Sentiment, error) {
	return f.series, f.err
}

func (f *fakeSentimentStore) GetAllSeries() ([]model.Sentiment, error) {
	return f.allSeries, f.err
}

func newTrendTestRouter(store SentimentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTrendHandler(store)
	r.GET("/trends", h.GetTrends)
	r.GET("/trends/:id", h.GetTrend)
	r.GET("/propositions/:id/sentiments", h.GetSentiments)
	return r
}

func sentimentSeries(propositionID string, values []float64) []model.Sentiment {
	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	series := make([]model.Sentiment, len(values))
	for i, v := range values {
		series[i] = model.Sentiment{
			PropositionID:  propositionID,
			DateGenerated:  start.AddDate(0, 0, i),
			ConsensusValue: v,
			AttentionValue: v / 2,
		}
	}
	return series
}

func TestGetTrend_SmoothsSeries(t *testing.T) {
	store := &fakeSentimentStore{
		series: sentimentSeries("marcos_robredo_2028", []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}),
	}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/trends/marcos_robredo_2028?window=7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TrendResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "marcos_robredo_2028", res.PropositionID)
	assert.Equal(t, 7, res.Window)
	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 10, len(res.Points))

	// Cold start passes raw values through; index 6 is the first full window.
	assert.Equal(t, 0.1, res.Points[0].SmoothedConsensus)
	assert.Equal(t, 0.4, res.Points[6].SmoothedConsensus)
	assert.Equal(t, 0.7, res.Points[9].SmoothedConsensus)
	assert.Equal(t, false, res.Points[0].Majority)
	assert.Equal(t, true, res.Points[9].Majority)
	assert.Equal(t, "2026-02-01", res.Points[0].Date)
}

func TestGetTrend_DefaultWindow(t *testing.T) {
	store := &fakeSentimentStore{
		series: sentimentSeries("p", []float64{0.5, 0.5}),
	}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/trends/p", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TrendResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 7, res.Window)
}

func TestGetTrend_InvalidWindow(t *testing.T) {
	store := &fakeSentimentStore{
		series: sentimentSeries("p", []float64{0.5}),
	}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/trends/p?window=0", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTrend_EmptySeries(t *testing.T) {
	store := &fakeSentimentStore{}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/trends/unknown", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TrendResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, len(res.Points))
}

func TestGetTrend_DBError(t *testing.T) {
	store := &fakeSentimentStore{err: errors.New("DB down")}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/trends/p", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetTrends_GroupsByProposition(t *testing.T) {
	all := append(
		sentimentSeries("a", []float64{0.2, 0.2, 0.2}),
		sentimentSeries("b", []float64{0.8, 0.8, 0.8})...,
	)
	store := &fakeSentimentStore{allSeries: all}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/trends?window=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res TrendsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, res.Window)
	assert.Equal(t, 2, len(res.Trends))

	byID := map[string]TrendResponse{}
	for _, trend := range res.Trends {
		byID[trend.PropositionID] = trend
	}
	assert.Equal(t, 3, byID["a"].Total)
	assert.Equal(t, 0.8, byID["b"].Points[2].SmoothedConsensus)
}

func TestGetTrends_InvalidWindow(t *testing.T) {
	store := &fakeSentimentStore{}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/trends?window=-3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSentiments_ReturnsRawSeries(t *testing.T) {
	series := sentimentSeries("p", []float64{0.4, 0.6})
	series[0].RationaleConsensus = "split reactions to the announcement"
	store := &fakeSentimentStore{series: series}
	r := newTrendTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/propositions/p/sentiments", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res SentimentSeriesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "p", res.PropositionID)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 0.4, res.Sentiments[0].ConsensusValue)
	assert.Equal(t, "split reactions to the announcement", res.Sentiments[0].RationaleConsensus)
}
