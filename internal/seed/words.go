package seed

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/service"
	"buzzwordz-backend/pkg/logger"
)

//go:embed data/words/*.json
var defaultWordsFS embed.FS

// EnsureStarterDictionary loads the embedded starter words so a fresh
// install can run a bee before any CSV import happens. Skipped entirely
// when the dictionary already has entries.
func EnsureStarterDictionary(dictService *service.DictionaryService) {
	count, err := dictService.Count()
	if err != nil {
		logger.Error(err, "Failed to count dictionary entries", nil)
		return
	}
	if count > 0 {
		return
	}

	entries, err := fs.ReadDir(defaultWordsFS, "data/words")
	if err != nil {
		logger.Error(err, "Failed to read embedded word definitions", nil)
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	created := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		data, err := defaultWordsFS.ReadFile(fmt.Sprintf("data/words/%s", name))
		if err != nil {
			logger.Error(err, "Failed to read embedded word file", map[string]interface{}{"file": name})
			continue
		}

		definitions, err := parseWordDefinitions(data)
		if err != nil {
			logger.Error(err, "Failed to parse embedded word file", map[string]interface{}{"file": name})
			continue
		}

		for _, definition := range definitions {
			if _, err := dictService.Create(definition); err != nil {
				if errors.Is(err, service.ErrWordExists) {
					continue
				}
				logger.Error(err, "Failed to create starter word", map[string]interface{}{"word": definition.Word, "source": name})
				continue
			}
			created++
		}
	}

	logger.Info("Seeded starter dictionary", map[string]interface{}{"words": created})
}

func parseWordDefinitions(data []byte) ([]models.CreateWordRequest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var definitions []models.CreateWordRequest
	if err := json.Unmarshal(trimmed, &definitions); err != nil {
		return nil, err
	}
	return definitions, nil
}
