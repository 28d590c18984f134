package service

import (
	"errors"
	"strings"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/pkg/cache"
	"buzzwordz-backend/pkg/navigation"
	"buzzwordz-backend/pkg/utils"
)

const defaultMenuLocation = "header"

var (
	ErrMenuLabelRequired = errors.New("menu label is required")
	ErrMenuURLRequired   = errors.New("menu url is required")
)

type MenuService struct {
	repo  repository.MenuRepository
	cache *cache.Cache
}

func NewMenuService(repo repository.MenuRepository, cacheService *cache.Cache) *MenuService {
	if repo == nil {
		return nil
	}
	return &MenuService{repo: repo, cache: cacheService}
}

func (s *MenuService) List() ([]models.MenuItem, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("menu repository not configured")
	}

	if s.cache != nil {
		var cached []models.MenuItem
		if err := s.cache.GetCachedMenu(&cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Normalize()
	}

	if s.cache != nil {
		s.cache.CacheMenu(items)
	}
	return items, nil
}

// Navigation converts the header menu into overlay entries ready for the
// template renderer.
func (s *MenuService) Navigation() ([]navigation.Item, error) {
	items, err := s.List()
	if err != nil {
		return nil, err
	}

	nav := make([]navigation.Item, 0, len(items))
	for _, item := range items {
		if item.Location != defaultMenuLocation {
			continue
		}
		nav = append(nav, navigation.Item{
			Label: item.Label,
			URL:   utils.NormalizePath(item.URL),
			Order: item.Order,
		})
	}
	return navigation.Sort(nav), nil
}

func (s *MenuService) Create(req models.CreateMenuItemRequest) (*models.MenuItem, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("menu repository not configured")
	}

	label := strings.TrimSpace(req.Label)
	url := strings.TrimSpace(req.URL)
	location := normalizeMenuLocation(req.Location)

	if label == "" {
		return nil, ErrMenuLabelRequired
	}
	if url == "" {
		return nil, ErrMenuURLRequired
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else {
		nextOrder, err := s.repo.NextOrder(location)
		if err != nil {
			return nil, err
		}
		order = nextOrder
	}

	item := &models.MenuItem{
		Label:    label,
		URL:      url,
		Location: location,
		Order:    order,
	}
	item.Normalize()

	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	s.invalidate()

	return item, nil
}

func (s *MenuService) Update(id uint, req models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("menu repository not configured")
	}

	item, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSpace(req.Label)
	url := strings.TrimSpace(req.URL)
	if label == "" {
		return nil, ErrMenuLabelRequired
	}
	if url == "" {
		return nil, ErrMenuURLRequired
	}

	item.Label = label
	item.URL = url
	if req.Order != nil {
		item.Order = *req.Order
	}
	if req.Location != nil {
		item.Location = normalizeMenuLocation(*req.Location)
	}
	item.Normalize()

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	s.invalidate()

	return item, nil
}

func (s *MenuService) Delete(id uint) error {
	if s == nil || s.repo == nil {
		return errors.New("menu repository not configured")
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *MenuService) Reorder(req models.ReorderMenuItemsRequest) error {
	if s == nil || s.repo == nil {
		return errors.New("menu repository not configured")
	}

	for _, order := range req.Orders {
		item, err := s.repo.GetByID(order.ID)
		if err != nil {
			return err
		}
		item.Order = order.Order
		if err := s.repo.Update(item); err != nil {
			return err
		}
	}
	s.invalidate()
	return nil
}

func (s *MenuService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateMenu()
	}
}

func normalizeMenuLocation(location string) string {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return defaultMenuLocation
	}
	return location
}
