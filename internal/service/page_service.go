package service

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
	"buzzwordz-backend/pkg/cache"
	"buzzwordz-backend/pkg/utils"
	"buzzwordz-backend/pkg/validator"
)

var (
	ErrPageTitleRequired = errors.New("page title is required")
	ErrPageSlugRequired  = errors.New("page slug is required")
	ErrPageSlugTaken     = errors.New("page with this slug already exists")
	ErrPagePathTaken     = errors.New("page with this path already exists")
)

type PageService struct {
	pageRepo repository.PageRepository
	cache    *cache.Cache
}

func NewPageService(pageRepo repository.PageRepository, cacheService *cache.Cache) *PageService {
	return &PageService{
		pageRepo: pageRepo,
		cache:    cacheService,
	}
}

func normalizePagePath(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	trimmed = strings.ReplaceAll(trimmed, "\\", "/")
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}

	cleaned := path.Clean(trimmed)
	if cleaned == "." {
		cleaned = "/"
	}
	if cleaned != "/" && strings.HasSuffix(cleaned, "/") {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}
	if strings.ContainsAny(cleaned, " \t\n\r") {
		return "", errors.New("page path cannot contain spaces")
	}

	return cleaned, nil
}

func defaultPathFromSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == "home" {
		return "/"
	}
	return "/" + slug
}

func (s *PageService) cachePage(page *models.Page) {
	if s == nil || s.cache == nil || page == nil {
		return
	}

	s.cache.CachePage(page.ID, page)
	if page.Path != "" {
		s.cache.CachePageByPath(page.Path, page)
	}
	if page.Slug != "" {
		s.cache.Set("page:slug:"+page.Slug, page, time.Hour)
	}
}

func (s *PageService) Create(req models.CreatePageRequest) (*models.Page, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrPageTitleRequired
	}

	var slug string
	if strings.TrimSpace(req.Slug) != "" {
		slug = utils.GenerateSlug(req.Slug)
	} else {
		slug = utils.GenerateSlug(req.Title)
	}
	if slug == "" {
		return nil, ErrPageSlugRequired
	}

	normalizedPath, err := normalizePagePath(req.Path)
	if err != nil {
		return nil, err
	}
	if normalizedPath == "" {
		normalizedPath = defaultPathFromSlug(slug)
	}

	exists, err := s.pageRepo.ExistsBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check page existence: %w", err)
	}
	if exists {
		return nil, ErrPageSlugTaken
	}

	existsByPath, err := s.pageRepo.ExistsByPath(normalizedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check page path existence: %w", err)
	}
	if existsByPath {
		return nil, ErrPagePathTaken
	}

	page := &models.Page{
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Path:        normalizedPath,
		Description: strings.TrimSpace(req.Description),
		Content:     validator.SanitizeHTML(strings.TrimSpace(req.Content)),
		Template:    pageTemplate(req.Template),
		Published:   req.Published,
		PublishAt:   req.PublishAt,
		Order:       req.Order,
	}

	if page.Published && page.PublishAt == nil {
		now := time.Now().UTC()
		page.PublishedAt = &now
	}

	if err := s.pageRepo.Create(page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidatePagesCache()
	}

	return s.pageRepo.GetByID(page.ID)
}

func (s *PageService) Update(id uint, req models.UpdatePageRequest) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrPageTitleRequired
		}
		page.Title = title
	}

	if req.Path != nil {
		normalizedPath, err := normalizePagePath(*req.Path)
		if err != nil {
			return nil, err
		}
		if normalizedPath == "" {
			normalizedPath = defaultPathFromSlug(page.Slug)
		}
		taken, err := s.pageRepo.ExistsByPathExceptID(normalizedPath, page.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check page path existence: %w", err)
		}
		if taken {
			return nil, ErrPagePathTaken
		}
		page.Path = normalizedPath
	}

	if req.Description != nil {
		page.Description = strings.TrimSpace(*req.Description)
	}
	if req.Content != nil {
		page.Content = validator.SanitizeHTML(strings.TrimSpace(*req.Content))
	}
	if req.Template != nil {
		page.Template = pageTemplate(*req.Template)
	}
	if req.Order != nil {
		page.Order = *req.Order
	}
	if req.PublishAt != nil {
		page.PublishAt = req.PublishAt
	}
	if req.Published != nil {
		s.applyPublication(page, *req.Published)
	}

	if err := s.pageRepo.Update(page); err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidatePage(page.ID)
	}

	return page, nil
}

func (s *PageService) applyPublication(page *models.Page, published bool) {
	page.Published = published
	if published {
		if page.PublishAt == nil && page.PublishedAt == nil {
			now := time.Now().UTC()
			page.PublishedAt = &now
		}
	} else {
		page.PublishedAt = nil
	}
}

func (s *PageService) Delete(id uint) error {
	if err := s.pageRepo.Delete(id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidatePage(id)
	}
	return nil
}

func (s *PageService) GetByID(id uint) (*models.Page, error) {
	if s.cache != nil {
		var cached models.Page
		if err := s.cache.GetCachedPage(id, &cached); err == nil {
			return &cached, nil
		}
	}

	page, err := s.pageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	s.cachePage(page)
	return page, nil
}

// GetBySlugAny resolves a page regardless of publication state. Admin and
// seeding paths use it so drafts are not recreated or hidden.
func (s *PageService) GetBySlugAny(slug string) (*models.Page, error) {
	return s.pageRepo.GetBySlugAny(slug)
}

func (s *PageService) GetBySlug(slug string) (*models.Page, error) {
	if s.cache != nil {
		var cached models.Page
		if err := s.cache.Get("page:slug:"+slug, &cached); err == nil {
			return &cached, nil
		}
	}

	page, err := s.pageRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	s.cachePage(page)
	return page, nil
}

// GetByPath resolves the page the layout displays for a request path.
// Only published pages resolve here; everything else is the 404 page.
func (s *PageService) GetByPath(requestPath string) (*models.Page, error) {
	normalized := utils.NormalizePath(requestPath)

	if s.cache != nil {
		var cached models.Page
		if err := s.cache.GetCachedPageByPath(normalized, &cached); err == nil {
			return &cached, nil
		}
	}

	page, err := s.pageRepo.GetByPath(normalized)
	if err != nil {
		return nil, err
	}
	s.cachePage(page)
	return page, nil
}

func (s *PageService) GetAll() ([]models.Page, error) {
	return s.pageRepo.GetAll()
}

func (s *PageService) GetAllAdmin() ([]models.Page, error) {
	return s.pageRepo.GetAllAdmin()
}

func (s *PageService) Publish(id uint) (*models.Page, error) {
	published := true
	return s.Update(id, models.UpdatePageRequest{Published: &published})
}

func (s *PageService) Unpublish(id uint) (*models.Page, error) {
	published := false
	return s.Update(id, models.UpdatePageRequest{Published: &published})
}

// PublishDue stamps PublishedAt on pages whose scheduled publish time has
// passed. Run periodically by the background scheduler.
func (s *PageService) PublishDue(now time.Time) (int, error) {
	due, err := s.pageRepo.GetDueForPublication(now.UTC())
	if err != nil {
		return 0, err
	}

	published := 0
	for i := range due {
		page := &due[i]
		stamp := now.UTC()
		page.PublishedAt = &stamp
		if err := s.pageRepo.Update(page); err != nil {
			return published, fmt.Errorf("failed to publish page %d: %w", page.ID, err)
		}
		if s.cache != nil {
			s.cache.InvalidatePage(page.ID)
		}
		published++
	}
	return published, nil
}

func pageTemplate(value string) string {
	template := strings.TrimSpace(value)
	if template == "" {
		return "page"
	}
	return template
}
