package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/service"
)

// maxImportSize caps dictionary uploads at 8MB, plenty for a bee word list.
const maxImportSize = 8 << 20

type DictionaryHandler struct {
	dictService *service.DictionaryService
	lookup      service.WordLookupProvider
}

func NewDictionaryHandler(dictService *service.DictionaryService, lookup service.WordLookupProvider) *DictionaryHandler {
	return &DictionaryHandler{dictService: dictService, lookup: lookup}
}

func (h *DictionaryHandler) Count(c *gin.Context) {
	count, err := h.dictService.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *DictionaryHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.dictService.List(offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": entries})
}

func (h *DictionaryHandler) Create(c *gin.Context) {
	var req models.CreateWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.dictService.Create(req)
	if err != nil {
		c.JSON(dictionaryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"word": entry})
}

func (h *DictionaryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word id"})
		return
	}

	if err := h.dictService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "word deleted successfully"})
}

// Import ingests a pipe-delimited dictionary file uploaded as form field
// "file" (word|origins|part_of_speech|pronunciation|meaning).
func (h *DictionaryHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dictionary file is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "dictionary file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer file.Close()

	report, err := h.dictService.ImportCSV(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "report": report})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Lookup fetches a word from the remote dictionary reference and stores it.
func (h *DictionaryHandler) Lookup(c *gin.Context) {
	if h.lookup == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrLookupNotConfigured.Error()})
		return
	}

	entry, err := h.dictService.LookupAndImport(c.Request.Context(), h.lookup, c.Param("word"))
	if err != nil {
		c.JSON(dictionaryErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"word": entry})
}

func dictionaryErrorStatus(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, service.ErrWordNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrWordRequired),
		errors.Is(err, service.ErrMeaningRequired):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrWordExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrLookupNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
