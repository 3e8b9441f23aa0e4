package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoldFish88/pollmph/internal/model"
	"github.com/gin-gonic/gin"
)

type PropositionStore interface {
	GetActive() ([]model.Proposition, error)
	GetAll() ([]model.Proposition, error)
	GetByID(id string) (*model.Proposition, error)
	Create(p *model.Proposition) (bool, error)
	Archive(id string) error
}

type PropositionHandler struct {
	repository PropositionStore
}

func NewPropositionHandler(repository PropositionStore) *PropositionHandler {
	return &PropositionHandler{repository: repository}
}

func (h *PropositionHandler) GetPropositions(c *gin.Context) {
	var propositions []model.Proposition
	var err error

	if c.Query("include_archived") == "true" {
		propositions, err = h.repository.GetAll()
	} else {
		propositions, err = h.repository.GetActive()
	}

	if err != nil {
		slog.Error("error fetching propositions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := []PropositionResponse{}
	for _, p := range propositions {
		res = append(res, toPropositionResponse(p))
	}

	c.JSON(http.StatusOK, res)
}

func (h *PropositionHandler) GetProposition(c *gin.Context) {
	id := c.Param("id")

	proposition, err := h.repository.GetByID(id)
	if err != nil {
		slog.Error("error fetching proposition", "error", err, "proposition_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if proposition == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposition not found"})
		return
	}

	c.JSON(http.StatusOK, toPropositionResponse(*proposition))
}

func (h *PropositionHandler) CreateProposition(c *gin.Context) {
	var req CreatePropositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposition payload"})
		return
	}

	proposition := model.Proposition{
		PropositionID:   req.PropositionID,
		PropositionText: req.PropositionText,
		SearchQueries:   req.SearchQueries,
	}

	created, err := h.repository.Create(&proposition)
	if err != nil {
		slog.Error("error creating proposition", "error", err, "proposition_id", req.PropositionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !created {
		c.JSON(http.StatusConflict, gin.H{"error": "Proposition already exists"})
		return
	}

	c.JSON(http.StatusCreated, toPropositionResponse(proposition))
}

func (h *PropositionHandler) ArchiveProposition(c *gin.Context) {
	id := c.Param("id")

	proposition, err := h.repository.GetByID(id)
	if err != nil {
		slog.Error("error fetching proposition", "error", err, "proposition_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if proposition == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Proposition not found"})
		return
	}

	if err := h.repository.Archive(id); err != nil {
		slog.Error("error archiving proposition", "error", err, "proposition_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"archived": id})
}

func (h *PropositionHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetActive()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func toPropositionResponse(p model.Proposition) PropositionResponse {
	queries := p.SearchQueries
	if queries == nil {
		queries = []string{}
	}
	return PropositionResponse{
		PropositionID:   p.PropositionID,
		PropositionText: p.PropositionText,
		SearchQueries:   queries,
		IsArchived:      p.IsArchived,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}
