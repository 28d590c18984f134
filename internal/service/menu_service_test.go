package service

import (
	"errors"
	"testing"

	"buzzwordz-backend/internal/models"
)

func TestMenuCreateAssignsNextOrder(t *testing.T) {
	svc := NewMenuService(newMemoryMenuRepository(), nil)

	first, err := svc.Create(models.CreateMenuItemRequest{Label: "Home", URL: "/"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := svc.Create(models.CreateMenuItemRequest{Label: "About", URL: "/about"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if second.Order <= first.Order {
		t.Fatalf("expected second item ordered after first, got %d then %d", first.Order, second.Order)
	}
	if first.Location != "header" {
		t.Fatalf("expected default header location, got %q", first.Location)
	}
}

func TestMenuCreateValidation(t *testing.T) {
	svc := NewMenuService(newMemoryMenuRepository(), nil)

	if _, err := svc.Create(models.CreateMenuItemRequest{Label: "  ", URL: "/"}); !errors.Is(err, ErrMenuLabelRequired) {
		t.Fatalf("expected ErrMenuLabelRequired, got %v", err)
	}
	if _, err := svc.Create(models.CreateMenuItemRequest{Label: "Home", URL: ""}); !errors.Is(err, ErrMenuURLRequired) {
		t.Fatalf("expected ErrMenuURLRequired, got %v", err)
	}
}

func TestMenuNavigationFiltersAndSorts(t *testing.T) {
	repo := newMemoryMenuRepository()
	svc := NewMenuService(repo, nil)

	two := 2
	one := 1
	three := 3

	mustCreateMenuItem(t, svc, models.CreateMenuItemRequest{Label: "About", URL: "/about", Order: &two})
	mustCreateMenuItem(t, svc, models.CreateMenuItemRequest{Label: "Home", URL: "/", Order: &one})
	mustCreateMenuItem(t, svc, models.CreateMenuItemRequest{Label: "Privacy", URL: "/privacy", Location: "footer", Order: &three})

	nav, err := svc.Navigation()
	if err != nil {
		t.Fatalf("Navigation returned error: %v", err)
	}

	if len(nav) != 2 {
		t.Fatalf("expected footer items filtered out, got %d items", len(nav))
	}
	if nav[0].Label != "Home" || nav[1].Label != "About" {
		t.Fatalf("expected items sorted by order, got %q then %q", nav[0].Label, nav[1].Label)
	}
	for _, item := range nav {
		if item.Active {
			t.Fatalf("navigation items start inactive, %q was active", item.Label)
		}
	}
}

func TestMenuNavigationNormalizesURLs(t *testing.T) {
	svc := NewMenuService(newMemoryMenuRepository(), nil)

	mustCreateMenuItem(t, svc, models.CreateMenuItemRequest{Label: "About", URL: "/about/"})

	nav, err := svc.Navigation()
	if err != nil {
		t.Fatalf("Navigation returned error: %v", err)
	}
	if len(nav) != 1 || nav[0].URL != "/about" {
		t.Fatalf("expected trailing slash trimmed, got %+v", nav)
	}
}

func TestMenuReorder(t *testing.T) {
	svc := NewMenuService(newMemoryMenuRepository(), nil)

	home := mustCreateMenuItem(t, svc, models.CreateMenuItemRequest{Label: "Home", URL: "/"})
	about := mustCreateMenuItem(t, svc, models.CreateMenuItemRequest{Label: "About", URL: "/about"})

	err := svc.Reorder(models.ReorderMenuItemsRequest{Orders: []models.MenuOrder{
		{ID: home.ID, Order: 2},
		{ID: about.ID, Order: 1},
	}})
	if err != nil {
		t.Fatalf("Reorder returned error: %v", err)
	}

	nav, err := svc.Navigation()
	if err != nil {
		t.Fatalf("Navigation returned error: %v", err)
	}
	if nav[0].Label != "About" || nav[1].Label != "Home" {
		t.Fatalf("expected reordered navigation, got %q then %q", nav[0].Label, nav[1].Label)
	}
}

func mustCreateMenuItem(t *testing.T, svc *MenuService, req models.CreateMenuItemRequest) *models.MenuItem {
	t.Helper()
	item, err := svc.Create(req)
	if err != nil {
		t.Fatalf("Create(%q) returned error: %v", req.Label, err)
	}
	return item
}
