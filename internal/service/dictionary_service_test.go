package service

import (
	"errors"
	"strings"
	"testing"

	"buzzwordz-backend/internal/models"
)

func TestDictionaryCreateNormalizes(t *testing.T) {
	repo := newMemoryWordRepository()
	svc := NewDictionaryService(repo)

	entry, err := svc.Create(createWordReq("  Ebullient  ", "overflowing with enthusiasm"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if entry.Word != "ebullient" {
		t.Fatalf("expected lowercased trimmed word, got %q", entry.Word)
	}

	if _, err := svc.Create(createWordReq("EBULLIENT", "again")); !errors.Is(err, ErrWordExists) {
		t.Fatalf("expected ErrWordExists, got %v", err)
	}

	if _, err := svc.Create(createWordReq("", "meaning")); !errors.Is(err, ErrWordRequired) {
		t.Fatalf("expected ErrWordRequired, got %v", err)
	}
	if _, err := svc.Create(createWordReq("word", "   ")); !errors.Is(err, ErrMeaningRequired) {
		t.Fatalf("expected ErrMeaningRequired, got %v", err)
	}
}

func TestDictionaryImportCSV(t *testing.T) {
	repo := newMemoryWordRepository()
	svc := NewDictionaryService(repo)

	input := strings.Join([]string{
		"word|origins|part_of_speech|pronunciation|meaning",
		"zephyr|Greek|noun|ZEF-ur|a gentle breeze from the west",
		"laconic|Greek|adjective|luh-KON-ik|using few words",
		"broken-row|only-two-columns",
		"|Latin|noun|x|meaning without a word",
		"zephyr|Greek|noun|ZEF-ur|duplicate of an earlier row",
	}, "\n")

	report, err := svc.ImportCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportCSV returned error: %v", err)
	}

	if report.Imported != 2 {
		t.Fatalf("expected 2 imported, got %+v", report)
	}
	if report.Skipped != 3 {
		t.Fatalf("expected 3 skipped, got %+v", report)
	}
	if report.Total != 5 {
		t.Fatalf("expected 5 data rows, got %+v", report)
	}

	entry, err := svc.GetByWord("zephyr")
	if err != nil {
		t.Fatalf("GetByWord returned error: %v", err)
	}
	if entry.Meaning != "a gentle breeze from the west" {
		t.Fatalf("duplicate row must not overwrite, got %q", entry.Meaning)
	}
}

func TestDictionaryImportCSVWithoutHeader(t *testing.T) {
	repo := newMemoryWordRepository()
	svc := NewDictionaryService(repo)

	input := "gossamer|English|noun|GOS-uh-mer|a fine filmy cobweb\n"

	report, err := svc.ImportCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportCSV returned error: %v", err)
	}
	if report.Imported != 1 || report.Total != 1 {
		t.Fatalf("headerless file should import its first row, got %+v", report)
	}
}

func TestDictionaryListCapsLimit(t *testing.T) {
	repo := newMemoryWordRepository(testWords()...)
	svc := NewDictionaryService(repo)

	entries, err := svc.List(0, -5)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != len(testWords()) {
		t.Fatalf("expected fallback limit to return all %d entries, got %d", len(testWords()), len(entries))
	}
}

func createWordReq(word, meaning string) models.CreateWordRequest {
	return models.CreateWordRequest{Word: word, Meaning: meaning}
}
