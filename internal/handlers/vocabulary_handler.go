package handlers

import (
	"net/http"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type VocabularyHandler struct {
	vocabularyService *service.VocabularyService
}

func NewVocabularyHandler(vocabularyService *service.VocabularyService) *VocabularyHandler {
	return &VocabularyHandler{vocabularyService: vocabularyService}
}

func (h *VocabularyHandler) Start(c *gin.Context) {
	var req models.StartQuizRequest
	// body is optional; zero words falls back to the configured default
	_ = c.ShouldBindJSON(&req)

	view, err := h.vocabularyService.Start(req.Words)
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *VocabularyHandler) Get(c *gin.Context) {
	view, err := h.vocabularyService.Get(c.Param("id"))
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *VocabularyHandler) Submit(c *gin.Context) {
	var req models.VocabularyChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.vocabularyService.Submit(c.Param("id"), req.Choice)
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *VocabularyHandler) Next(c *gin.Context) {
	view, err := h.vocabularyService.Next(c.Param("id"))
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *VocabularyHandler) Previous(c *gin.Context) {
	view, err := h.vocabularyService.Previous(c.Param("id"))
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *VocabularyHandler) Quit(c *gin.Context) {
	if err := h.vocabularyService.Quit(c.Param("id")); err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}
