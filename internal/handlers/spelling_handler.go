package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/service"
)

type SpellingHandler struct {
	spellingService *service.SpellingService
}

func NewSpellingHandler(spellingService *service.SpellingService) *SpellingHandler {
	return &SpellingHandler{spellingService: spellingService}
}

func (h *SpellingHandler) Start(c *gin.Context) {
	var req models.StartQuizRequest
	// body is optional; zero words falls back to the configured default
	_ = c.ShouldBindJSON(&req)

	view, err := h.spellingService.Start(req.Words)
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *SpellingHandler) Get(c *gin.Context) {
	view, err := h.spellingService.Get(c.Param("id"))
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *SpellingHandler) Hint(c *gin.Context) {
	var req models.HintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.spellingService.Hint(c.Param("id"), req.Type)
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *SpellingHandler) Submit(c *gin.Context) {
	var req models.SpellingAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.spellingService.Submit(c.Param("id"), req.Answer)
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SpellingHandler) Next(c *gin.Context) {
	view, err := h.spellingService.Next(c.Param("id"))
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *SpellingHandler) Previous(c *gin.Context) {
	view, err := h.spellingService.Previous(c.Param("id"))
	if err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *SpellingHandler) Quit(c *gin.Context) {
	if err := h.spellingService.Quit(c.Param("id")); err != nil {
		c.JSON(quizErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session ended"})
}

func quizErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownHint):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDictionaryEmpty):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
