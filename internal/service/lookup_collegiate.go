package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"buzzwordz-backend/internal/models"
)

const defaultCollegiateEndpoint = "https://dictionaryapi.com/api/v3/references/collegiate/json"

var (
	ErrLookupNotConfigured = errors.New("dictionary lookup is not configured")
	ErrWordNotFound        = errors.New("word not found in the remote dictionary")
)

// WordLookupProvider fetches dictionary entries from a remote reference.
type WordLookupProvider interface {
	Lookup(ctx context.Context, word string) (*models.WordEntry, error)
}

// CollegiateOptions controls the Merriam-Webster collegiate API client.
type CollegiateOptions struct {
	Endpoint   string
	HTTPClient *http.Client
}

// CollegiateProvider implements WordLookupProvider against the
// Merriam-Webster collegiate JSON API.
type CollegiateProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewCollegiateProvider(apiKey string, opts CollegiateOptions) (*CollegiateProvider, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, ErrLookupNotConfigured
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint == "" {
		endpoint = defaultCollegiateEndpoint
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &CollegiateProvider{
		apiKey:   trimmedKey,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   client,
	}, nil
}

// collegiateEntry mirrors the slice of fields we consume from the API
// response. "et" (etymology) arrives as nested token arrays; only the text
// tokens are kept.
type collegiateEntry struct {
	Meta struct {
		ID string `json:"id"`
	} `json:"meta"`
	HWI struct {
		PRS []struct {
			MW string `json:"mw"`
		} `json:"prs"`
	} `json:"hwi"`
	FL       string          `json:"fl"`
	ET       [][]interface{} `json:"et"`
	ShortDef []string        `json:"shortdef"`
}

func (p *CollegiateProvider) Lookup(ctx context.Context, word string) (*models.WordEntry, error) {
	if p == nil || p.client == nil {
		return nil, ErrLookupNotConfigured
	}

	trimmed := strings.ToLower(strings.TrimSpace(word))
	if trimmed == "" {
		return nil, ErrWordRequired
	}

	requestURL := fmt.Sprintf("%s/%s?key=%s", p.endpoint, url.PathEscape(trimmed), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("collegiate: failed to build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("collegiate: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("collegiate: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("collegiate: failed to read response: %w", err)
	}

	var entries []collegiateEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		// An unknown word returns a plain array of suggestion strings, which
		// fails to decode as entry objects.
		return nil, ErrWordNotFound
	}

	entry := pickEntry(entries, trimmed)
	if entry == nil {
		return nil, ErrWordNotFound
	}

	result := &models.WordEntry{
		Word:         headword(entry.Meta.ID),
		PartOfSpeech: strings.TrimSpace(entry.FL),
		Origins:      etymologyText(entry.ET),
		Meaning:      strings.Join(entry.ShortDef, "; "),
	}
	if len(entry.HWI.PRS) > 0 {
		result.Pronunciation = strings.TrimSpace(entry.HWI.PRS[0].MW)
	}
	if result.Word == "" || result.Meaning == "" {
		return nil, ErrWordNotFound
	}
	return result, nil
}

// pickEntry prefers the entry whose headword matches the query exactly;
// the API lists homographs first.
func pickEntry(entries []collegiateEntry, word string) *collegiateEntry {
	for i := range entries {
		if strings.EqualFold(headword(entries[i].Meta.ID), word) && len(entries[i].ShortDef) > 0 {
			return &entries[i]
		}
	}
	for i := range entries {
		if len(entries[i].ShortDef) > 0 {
			return &entries[i]
		}
	}
	return nil
}

// headword strips the homograph suffix from a meta id ("bee:1" -> "bee").
func headword(metaID string) string {
	id := strings.TrimSpace(metaID)
	if idx := strings.IndexByte(id, ':'); idx >= 0 {
		id = id[:idx]
	}
	return strings.ToLower(id)
}

func etymologyText(et [][]interface{}) string {
	var parts []string
	for _, pair := range et {
		if len(pair) != 2 {
			continue
		}
		kind, ok := pair[0].(string)
		if !ok || kind != "text" {
			continue
		}
		if text, ok := pair[1].(string); ok {
			parts = append(parts, stripMarkup(text))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// stripMarkup removes the API's {it}...{/it} style inline tokens.
func stripMarkup(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// LookupAndImport fetches a word from the provider and stores it in the
// dictionary. Already known words are rejected the same way Create does.
func (s *DictionaryService) LookupAndImport(ctx context.Context, provider WordLookupProvider, word string) (*models.WordEntry, error) {
	if provider == nil {
		return nil, ErrLookupNotConfigured
	}

	entry, err := provider.Lookup(ctx, word)
	if err != nil {
		return nil, err
	}

	return s.Create(models.CreateWordRequest{
		Word:          entry.Word,
		Origins:       entry.Origins,
		PartOfSpeech:  entry.PartOfSpeech,
		Pronunciation: entry.Pronunciation,
		Meaning:       entry.Meaning,
	})
}
