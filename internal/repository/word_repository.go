package repository

import (
	"gorm.io/gorm"

	"buzzwordz-backend/internal/models"
)

type WordRepository interface {
	Create(entry *models.WordEntry) error
	Update(entry *models.WordEntry) error
	Delete(id uint) error
	GetByID(id uint) (*models.WordEntry, error)
	GetByWord(word string) (*models.WordEntry, error)
	List(offset, limit int) ([]models.WordEntry, error)
	Count() (int64, error)
	Random(n int) ([]models.WordEntry, error)
	RandomExcluding(n int, word string) ([]models.WordEntry, error)
	ExistsByWord(word string) (bool, error)
}

type wordRepository struct {
	db *gorm.DB
}

func NewWordRepository(db *gorm.DB) WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Create(entry *models.WordEntry) error {
	return r.db.Create(entry).Error
}

func (r *wordRepository) Update(entry *models.WordEntry) error {
	return r.db.Save(entry).Error
}

func (r *wordRepository) Delete(id uint) error {
	return r.db.Unscoped().Delete(&models.WordEntry{}, id).Error
}

func (r *wordRepository) GetByID(id uint) (*models.WordEntry, error) {
	var entry models.WordEntry
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *wordRepository) GetByWord(word string) (*models.WordEntry, error) {
	var entry models.WordEntry
	if err := r.db.Where("LOWER(word) = LOWER(?)", word).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *wordRepository) List(offset, limit int) ([]models.WordEntry, error) {
	var entries []models.WordEntry
	if err := r.db.Order("word ASC").Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wordRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.WordEntry{}).Count(&count).Error
	return count, err
}

// Random draws n entries in random order. RANDOM() is fine at bee-dictionary
// scale (a few thousand rows).
func (r *wordRepository) Random(n int) ([]models.WordEntry, error) {
	var entries []models.WordEntry
	if err := r.db.Order("RANDOM()").Limit(n).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wordRepository) RandomExcluding(n int, word string) ([]models.WordEntry, error) {
	var entries []models.WordEntry
	if err := r.db.Where("LOWER(word) <> LOWER(?)", word).
		Order("RANDOM()").Limit(n).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *wordRepository) ExistsByWord(word string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.WordEntry{}).
		Where("LOWER(word) = LOWER(?)", word).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
