package service

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"buzzwordz-backend/internal/models"
	"buzzwordz-backend/internal/repository"
)

type memoryWordRepository struct {
	nextID  uint
	entries []models.WordEntry
}

func newMemoryWordRepository(words ...models.WordEntry) *memoryWordRepository {
	repo := &memoryWordRepository{nextID: 1}
	for i := range words {
		repo.Create(&words[i])
	}
	return repo
}

func (m *memoryWordRepository) Create(entry *models.WordEntry) error {
	entry.ID = m.nextID
	m.nextID++
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryWordRepository) Update(entry *models.WordEntry) error {
	for i := range m.entries {
		if m.entries[i].ID == entry.ID {
			m.entries[i] = *entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryWordRepository) Delete(id uint) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryWordRepository) GetByID(id uint) (*models.WordEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			entry := m.entries[i]
			return &entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryWordRepository) GetByWord(word string) (*models.WordEntry, error) {
	for i := range m.entries {
		if strings.EqualFold(m.entries[i].Word, word) {
			entry := m.entries[i]
			return &entry, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryWordRepository) List(offset, limit int) ([]models.WordEntry, error) {
	sorted := make([]models.WordEntry, len(m.entries))
	copy(sorted, m.entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Word < sorted[j].Word })

	if offset >= len(sorted) {
		return nil, nil
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[offset:end], nil
}

func (m *memoryWordRepository) Count() (int64, error) {
	return int64(len(m.entries)), nil
}

func (m *memoryWordRepository) Random(n int) ([]models.WordEntry, error) {
	if n > len(m.entries) {
		n = len(m.entries)
	}
	out := make([]models.WordEntry, n)
	copy(out, m.entries[:n])
	return out, nil
}

func (m *memoryWordRepository) RandomExcluding(n int, word string) ([]models.WordEntry, error) {
	var out []models.WordEntry
	for _, entry := range m.entries {
		if strings.EqualFold(entry.Word, word) {
			continue
		}
		out = append(out, entry)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

func (m *memoryWordRepository) ExistsByWord(word string) (bool, error) {
	_, err := m.GetByWord(word)
	if err == nil {
		return true, nil
	}
	return false, nil
}

var _ repository.WordRepository = (*memoryWordRepository)(nil)

type memoryPageRepository struct {
	nextID uint
	pages  []models.Page
}

func newMemoryPageRepository() *memoryPageRepository {
	return &memoryPageRepository{nextID: 1}
}

func (m *memoryPageRepository) Create(page *models.Page) error {
	page.ID = m.nextID
	m.nextID++
	page.CreatedAt = time.Now()
	m.pages = append(m.pages, *page)
	return nil
}

func (m *memoryPageRepository) Update(page *models.Page) error {
	for i := range m.pages {
		if m.pages[i].ID == page.ID {
			m.pages[i] = *page
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryPageRepository) Delete(id uint) error {
	for i := range m.pages {
		if m.pages[i].ID == id {
			m.pages = append(m.pages[:i], m.pages[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryPageRepository) GetByID(id uint) (*models.Page, error) {
	for i := range m.pages {
		if m.pages[i].ID == id {
			page := m.pages[i]
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryPageRepository) visible(page *models.Page, now time.Time) bool {
	if !page.Published {
		return false
	}
	return page.PublishAt == nil || !page.PublishAt.After(now)
}

func (m *memoryPageRepository) GetBySlug(slug string) (*models.Page, error) {
	now := time.Now().UTC()
	for i := range m.pages {
		if m.pages[i].Slug == slug && m.visible(&m.pages[i], now) {
			page := m.pages[i]
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryPageRepository) GetBySlugAny(slug string) (*models.Page, error) {
	for i := range m.pages {
		if m.pages[i].Slug == slug {
			page := m.pages[i]
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryPageRepository) GetByPath(path string) (*models.Page, error) {
	now := time.Now().UTC()
	for i := range m.pages {
		if m.pages[i].Path == path && m.visible(&m.pages[i], now) {
			page := m.pages[i]
			return &page, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryPageRepository) GetAll() ([]models.Page, error) {
	now := time.Now().UTC()
	var out []models.Page
	for i := range m.pages {
		if m.visible(&m.pages[i], now) {
			out = append(out, m.pages[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memoryPageRepository) GetAllAdmin() ([]models.Page, error) {
	out := make([]models.Page, len(m.pages))
	copy(out, m.pages)
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *memoryPageRepository) GetDueForPublication(now time.Time) ([]models.Page, error) {
	var out []models.Page
	for i := range m.pages {
		p := &m.pages[i]
		if p.Published && p.PublishAt != nil && !p.PublishAt.After(now) && p.PublishedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memoryPageRepository) ExistsBySlug(slug string) (bool, error) {
	for i := range m.pages {
		if m.pages[i].Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryPageRepository) ExistsByPath(path string) (bool, error) {
	for i := range m.pages {
		if m.pages[i].Path == path {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryPageRepository) ExistsByPathExceptID(path string, excludeID uint) (bool, error) {
	for i := range m.pages {
		if m.pages[i].Path == path && m.pages[i].ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.PageRepository = (*memoryPageRepository)(nil)

type memoryMenuRepository struct {
	nextID uint
	items  []models.MenuItem
}

func newMemoryMenuRepository() *memoryMenuRepository {
	return &memoryMenuRepository{nextID: 1}
}

func (m *memoryMenuRepository) List() ([]models.MenuItem, error) {
	out := make([]models.MenuItem, len(m.items))
	copy(out, m.items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryMenuRepository) ListByLocation(location string) ([]models.MenuItem, error) {
	all, _ := m.List()
	var out []models.MenuItem
	for _, item := range all {
		if item.Location == location {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memoryMenuRepository) Create(item *models.MenuItem) error {
	item.ID = m.nextID
	m.nextID++
	m.items = append(m.items, *item)
	return nil
}

func (m *memoryMenuRepository) Update(item *models.MenuItem) error {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memoryMenuRepository) Delete(id uint) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryMenuRepository) GetByID(id uint) (*models.MenuItem, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryMenuRepository) GetByURL(url string) (*models.MenuItem, error) {
	for i := range m.items {
		if m.items[i].URL == url {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryMenuRepository) NextOrder(location string) (int, error) {
	max := 0
	for i := range m.items {
		if m.items[i].Location == location && m.items[i].Order > max {
			max = m.items[i].Order
		}
	}
	return max + 1, nil
}

var _ repository.MenuRepository = (*memoryMenuRepository)(nil)

func testWords() []models.WordEntry {
	return []models.WordEntry{
		{Word: "ebullient", Origins: "Latin", PartOfSpeech: "adjective", Meaning: "overflowing with enthusiasm"},
		{Word: "zephyr", Origins: "Greek", PartOfSpeech: "noun", Meaning: "a gentle breeze"},
		{Word: "laconic", Origins: "Greek", PartOfSpeech: "adjective", Meaning: "using few words"},
		{Word: "gossamer", Origins: "English", PartOfSpeech: "noun", Meaning: "a fine filmy cobweb"},
		{Word: "taciturn", Origins: "Latin", PartOfSpeech: "adjective", Meaning: "habitually silent"},
	}
}
