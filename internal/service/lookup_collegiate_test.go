package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const collegiateBeeResponse = `[
	{
		"meta": {"id": "bee:1"},
		"hwi": {"prs": [{"mw": "ˈbē"}]},
		"fl": "noun",
		"et": [["text", "Middle English, from Old English {it}bēo{/it}"]],
		"shortdef": ["any of numerous hymenopterous insects"]
	},
	{
		"meta": {"id": "bee:2"},
		"fl": "noun",
		"shortdef": ["a gathering of people for a specific purpose"]
	}
]`

func newCollegiateTestProvider(t *testing.T, handler http.HandlerFunc) *CollegiateProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewCollegiateProvider("test-key", CollegiateOptions{
		Endpoint:   server.URL,
		HTTPClient: server.Client(),
	})
	if err != nil {
		t.Fatalf("NewCollegiateProvider returned error: %v", err)
	}
	return provider
}

func TestCollegiateProviderRequiresKey(t *testing.T) {
	if _, err := NewCollegiateProvider("   ", CollegiateOptions{}); !errors.Is(err, ErrLookupNotConfigured) {
		t.Fatalf("expected ErrLookupNotConfigured, got %v", err)
	}
}

func TestCollegiateLookupParsesEntry(t *testing.T) {
	provider := newCollegiateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bee" {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in %q", r.URL.RawQuery)
		}
		w.Write([]byte(collegiateBeeResponse))
	})

	entry, err := provider.Lookup(context.Background(), "  Bee ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}

	if entry.Word != "bee" {
		t.Fatalf("expected homograph suffix stripped, got %q", entry.Word)
	}
	if entry.PartOfSpeech != "noun" {
		t.Fatalf("unexpected part of speech %q", entry.PartOfSpeech)
	}
	if entry.Pronunciation != "ˈbē" {
		t.Fatalf("unexpected pronunciation %q", entry.Pronunciation)
	}
	if entry.Origins != "Middle English, from Old English bēo" {
		t.Fatalf("expected inline markup stripped from etymology, got %q", entry.Origins)
	}
	if entry.Meaning != "any of numerous hymenopterous insects" {
		t.Fatalf("unexpected meaning %q", entry.Meaning)
	}
}

func TestCollegiateLookupUnknownWord(t *testing.T) {
	provider := newCollegiateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// The API answers unknown words with a plain array of suggestions.
		w.Write([]byte(`["bees", "beet", "beef"]`))
	})

	if _, err := provider.Lookup(context.Background(), "beez"); !errors.Is(err, ErrWordNotFound) {
		t.Fatalf("expected ErrWordNotFound, got %v", err)
	}
}

func TestCollegiateLookupBadStatus(t *testing.T) {
	provider := newCollegiateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	if _, err := provider.Lookup(context.Background(), "bee"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestLookupAndImport(t *testing.T) {
	provider := newCollegiateTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(collegiateBeeResponse))
	})

	repo := newMemoryWordRepository()
	svc := NewDictionaryService(repo)

	entry, err := svc.LookupAndImport(context.Background(), provider, "bee")
	if err != nil {
		t.Fatalf("LookupAndImport returned error: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("imported entry should be persisted")
	}

	if _, err := svc.LookupAndImport(context.Background(), provider, "bee"); !errors.Is(err, ErrWordExists) {
		t.Fatalf("expected ErrWordExists on second import, got %v", err)
	}

	if _, err := svc.LookupAndImport(context.Background(), nil, "bee"); !errors.Is(err, ErrLookupNotConfigured) {
		t.Fatalf("expected ErrLookupNotConfigured without a provider, got %v", err)
	}
}
