package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/pkg/logger"
)

var (
	ErrWordRequired    = errors.New("word is required")
	ErrMeaningRequired = errors.New("meaning is required")
	ErrWordExists      = errors.New("word already exists in the dictionary")
)

// importColumns is the pipe-delimited dictionary layout:
// word|origins|part_of_speech|pronunciation|meaning
const importColumns = 5

type DictionaryService struct {
	wordRepo repository.WordRepository
}

type ImportReport struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

func NewDictionaryService(wordRepo repository.WordRepository) *DictionaryService {
	return &DictionaryService{wordRepo: wordRepo}
}

func (s *DictionaryService) Create(req models.CreateWordRequest) (*models.WordEntry, error) {
	word := strings.ToLower(strings.TrimSpace(req.Word))
	meaning := strings.TrimSpace(req.Meaning)
	if word == "" {
		return nil, ErrWordRequired
	}
	if meaning == "" {
		return nil, ErrMeaningRequired
	}

	exists, err := s.wordRepo.ExistsByWord(word)
	if err != nil {
		return nil, fmt.Errorf("failed to check word existence: %w", err)
	}
	if exists {
		return nil, ErrWordExists
	}

	entry := &models.WordEntry{
		Word:          word,
		Origins:       strings.TrimSpace(req.Origins),
		PartOfSpeech:  strings.TrimSpace(req.PartOfSpeech),
		Pronunciation: strings.TrimSpace(req.Pronunciation),
		Meaning:       meaning,
	}

	if err := s.wordRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create word: %w", err)
	}
	return entry, nil
}

func (s *DictionaryService) Delete(id uint) error {
	return s.wordRepo.Delete(id)
}

func (s *DictionaryService) GetByWord(word string) (*models.WordEntry, error) {
	return s.wordRepo.GetByWord(strings.TrimSpace(word))
}

func (s *DictionaryService) List(offset, limit int) ([]models.WordEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.wordRepo.List(offset, limit)
}

func (s *DictionaryService) Count() (int64, error) {
	return s.wordRepo.Count()
}

// ImportCSV ingests a pipe-delimited dictionary file. Malformed rows and
// words already present are skipped, not fatal; the report carries both
// counts so the caller can tell a clean import from a noisy one.
func (s *DictionaryService) ImportCSV(r io.Reader) (*ImportReport, error) {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	report := &ImportReport{}
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skipped++
			continue
		}

		if first {
			first = false
			if isImportHeader(record) {
				continue
			}
		}

		report.Total++

		entry, ok := parseImportRecord(record)
		if !ok {
			report.Skipped++
			continue
		}

		exists, err := s.wordRepo.ExistsByWord(entry.Word)
		if err != nil {
			return report, fmt.Errorf("failed to check word existence: %w", err)
		}
		if exists {
			report.Skipped++
			continue
		}

		if err := s.wordRepo.Create(entry); err != nil {
			return report, fmt.Errorf("failed to import word %q: %w", entry.Word, err)
		}
		report.Imported++
	}

	logger.Info("Dictionary import finished", map[string]interface{}{
		"imported": report.Imported,
		"skipped":  report.Skipped,
		"total":    report.Total,
	})
	return report, nil
}

func isImportHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "word")
}

func parseImportRecord(record []string) (*models.WordEntry, bool) {
	if len(record) < importColumns {
		return nil, false
	}

	word := strings.ToLower(strings.TrimSpace(record[0]))
	meaning := strings.TrimSpace(record[4])
	if word == "" || meaning == "" {
		return nil, false
	}

	return &models.WordEntry{
		Word:          word,
		Origins:       strings.TrimSpace(record[1]),
		PartOfSpeech:  strings.TrimSpace(record[2]),
		Pronunciation: strings.TrimSpace(record[3]),
		Meaning:       meaning,
	}, true
}
