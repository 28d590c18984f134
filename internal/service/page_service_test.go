package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/pkg/validator"
)

func TestMain(m *testing.M) {
	validator.Init()
	os.Exit(m.Run())
}

func TestPageCreateGeneratesSlugAndPath(t *testing.T) {
	svc := NewPageService(newMemoryPageRepository(), nil)

	page, err := svc.Create(models.CreatePageRequest{Title: "Spelling Bee", Published: true})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if page.Slug != "spelling-bee" {
		t.Fatalf("expected slug derived from title, got %q", page.Slug)
	}
	if page.Path != "/spelling-bee" {
		t.Fatalf("expected path derived from slug, got %q", page.Path)
	}
	if page.Template != "page" {
		t.Fatalf("expected default template, got %q", page.Template)
	}
	if page.PublishedAt == nil {
		t.Fatal("published page should be stamped with a publication time")
	}
}

func TestPageCreateHomeSlugMapsToRoot(t *testing.T) {
	svc := NewPageService(newMemoryPageRepository(), nil)

	page, err := svc.Create(models.CreatePageRequest{Title: "Home", Published: true})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if page.Path != "/" {
		t.Fatalf("home slug should map to the root path, got %q", page.Path)
	}
}

func TestPageCreateNormalizesPath(t *testing.T) {
	svc := NewPageService(newMemoryPageRepository(), nil)

	page, err := svc.Create(models.CreatePageRequest{Title: "About", Path: "about/"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if page.Path != "/about" {
		t.Fatalf("expected normalized path, got %q", page.Path)
	}
}

func TestPageCreateRejectsDuplicates(t *testing.T) {
	svc := NewPageService(newMemoryPageRepository(), nil)

	if _, err := svc.Create(models.CreatePageRequest{Title: "About"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(models.CreatePageRequest{Title: "About"}); !errors.Is(err, ErrPageSlugTaken) {
		t.Fatalf("expected ErrPageSlugTaken, got %v", err)
	}
	if _, err := svc.Create(models.CreatePageRequest{Title: "About Us", Slug: "about-us", Path: "/about"}); !errors.Is(err, ErrPagePathTaken) {
		t.Fatalf("expected ErrPagePathTaken, got %v", err)
	}
	if _, err := svc.Create(models.CreatePageRequest{Title: "   "}); !errors.Is(err, ErrPageTitleRequired) {
		t.Fatalf("expected ErrPageTitleRequired, got %v", err)
	}
}

func TestPageCreateSanitizesContent(t *testing.T) {
	svc := NewPageService(newMemoryPageRepository(), nil)

	page, err := svc.Create(models.CreatePageRequest{
		Title:   "Home",
		Content: `<p>Welcome</p><script>alert("hi")</script>`,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if page.Content != "<p>Welcome</p>" {
		t.Fatalf("expected script stripped from content, got %q", page.Content)
	}
}

func TestPageGetByPathOnlyResolvesPublished(t *testing.T) {
	svc := NewPageService(newMemoryPageRepository(), nil)

	if _, err := svc.Create(models.CreatePageRequest{Title: "Drafts"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.GetByPath("/drafts"); err == nil {
		t.Fatal("unpublished page should not resolve by path")
	}

	if _, err := svc.Create(models.CreatePageRequest{Title: "About", Published: true}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	page, err := svc.GetByPath("/about/")
	if err != nil {
		t.Fatalf("GetByPath returned error: %v", err)
	}
	if page.Slug != "about" {
		t.Fatalf("expected about page, got %q", page.Slug)
	}
}

func TestPageUnpublishClearsStamp(t *testing.T) {
	svc := NewPageService(newMemoryPageRepository(), nil)

	page, err := svc.Create(models.CreatePageRequest{Title: "About", Published: true})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Unpublish(page.ID)
	if err != nil {
		t.Fatalf("Unpublish returned error: %v", err)
	}
	if updated.Published || updated.PublishedAt != nil {
		t.Fatalf("unpublish should clear publication state, got %+v", updated)
	}

	if _, err := svc.GetByPath("/about"); err == nil {
		t.Fatal("unpublished page should no longer resolve by path")
	}
}

func TestPagePublishDue(t *testing.T) {
	repo := newMemoryPageRepository()
	svc := NewPageService(repo, nil)

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	if _, err := svc.Create(models.CreatePageRequest{Title: "Ready", Published: true, PublishAt: &past}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(models.CreatePageRequest{Title: "Later", Published: true, PublishAt: &future}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	published, err := svc.PublishDue(time.Now())
	if err != nil {
		t.Fatalf("PublishDue returned error: %v", err)
	}
	if published != 1 {
		t.Fatalf("expected one page published, got %d", published)
	}

	ready, err := repo.GetByPath("/ready")
	if err != nil {
		t.Fatalf("GetByPath returned error: %v", err)
	}
	if ready.PublishedAt == nil {
		t.Fatal("due page should carry a publication stamp")
	}

	again, err := svc.PublishDue(time.Now())
	if err != nil {
		t.Fatalf("PublishDue returned error: %v", err)
	}
	if again != 0 {
		t.Fatalf("second sweep should publish nothing, got %d", again)
	}
}
