package services

import (
	"context"
	"log"
	"strings"

	"roomrental-backend/models"

	"gorm.io/gorm"
)

var amenitySortable = map[string]bool{"id": true, "name": true, "created_at": true, "updated_at": true}

type AmenityInput struct {
	Name     string  `form:"name" json:"name" binding:"required,notblank,max=250"`
	Icon     *string `form:"icon" json:"icon" binding:"omitempty,max=255"`
	IsActive *bool   `form:"is_active" json:"is_active"`
}

// ActiveAmenity is the trimmed shape offered to room forms.
type ActiveAmenity struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon"`
}

type AmenityService struct {
	DB    *gorm.DB
	Cache CatalogCache
}

func NewAmenityService(db *gorm.DB, cache CatalogCache) *AmenityService {
	if cache == nil {
		cache = NoopCatalogCache{}
	}
	return &AmenityService{DB: db, Cache: cache}
}

func (s *AmenityService) List(ctx context.Context, q ListQuery) (Page[models.Amenity], error) {
	q = q.normalized(amenitySortable)
	query := s.DB.WithContext(ctx).Model(&models.Amenity{}).Scopes(activeFilter("amenities", q.Status))
	if q.Search != "" {
		query = query.Where("amenities.name LIKE ?", likePattern(q.Search))
	}

	page, err := paginate[models.Amenity](query, "amenities", q)
	if err != nil {
		log.Printf("Error fetching amenities: %v", err)
		return page, classify("list amenities", err, "")
	}
	return page, nil
}

func (s *AmenityService) Active(ctx context.Context) ([]ActiveAmenity, error) {
	return cachedLoad(ctx, s.Cache, cacheKeyActiveAmenities, func() ([]ActiveAmenity, error) {
		out := []ActiveAmenity{}
		err := s.DB.WithContext(ctx).Model(&models.Amenity{}).
			Select("id", "name", "icon").
			Where("is_active = ?", true).
			Order("name ASC").
			Find(&out).Error
		if err != nil {
			log.Printf("Error fetching active amenities: %v", err)
			return nil, classify("list active amenities", err, "")
		}
		return out, nil
	})
}

func (s *AmenityService) Get(ctx context.Context, id uint) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := s.DB.WithContext(ctx).First(&amenity, id).Error; err != nil {
		log.Printf("Amenity not found: ID %d (%v)", id, err)
		return nil, classify("get amenity", err, "")
	}
	return &amenity, nil
}

func (s *AmenityService) Create(ctx context.Context, in AmenityInput) (*models.Amenity, error) {
	db := s.DB.WithContext(ctx)
	name := strings.TrimSpace(in.Name)
	if err := ensureUnique(db, &models.Amenity{}, "name", name, 0); err != nil {
		return nil, classify("create amenity", err, "name")
	}

	amenity := models.Amenity{
		Name:     name,
		Icon:     trimmedPtr(in.Icon),
		IsActive: boolOr(in.IsActive, true),
	}
	if err := db.Create(&amenity).Error; err != nil {
		log.Printf("Error creating amenity: %v", err)
		return nil, classify("create amenity", err, "name")
	}

	invalidate(ctx, s.Cache, cacheKeyActiveAmenities)
	return &amenity, nil
}

func (s *AmenityService) Update(ctx context.Context, id uint, in AmenityInput) (*models.Amenity, error) {
	db := s.DB.WithContext(ctx)

	var amenity models.Amenity
	if err := db.First(&amenity, id).Error; err != nil {
		log.Printf("Amenity not found for update: ID %d", id)
		return nil, classify("update amenity", err, "")
	}

	name := strings.TrimSpace(in.Name)
	if err := ensureUnique(db, &models.Amenity{}, "name", name, amenity.ID); err != nil {
		return nil, classify("update amenity", err, "name")
	}

	amenity.Name = name
	amenity.Icon = trimmedPtr(in.Icon)
	amenity.IsActive = boolOr(in.IsActive, amenity.IsActive)
	if err := db.Select("name", "icon", "is_active", "updated_at").Save(&amenity).Error; err != nil {
		log.Printf("Error updating amenity %d: %v", id, err)
		return nil, classify("update amenity", err, "name")
	}

	invalidate(ctx, s.Cache, cacheKeyActiveAmenities)
	return &amenity, nil
}

func (s *AmenityService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)

	var amenity models.Amenity
	if err := db.First(&amenity, id).Error; err != nil {
		log.Printf("Amenity not found for deletion: ID %d", id)
		return classify("delete amenity", err, "")
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("amenity_id = ?", amenity.ID).Delete(&models.RoomAmenity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&amenity).Error
	})
	if err != nil {
		log.Printf("Error deleting amenity %d: %v", id, err)
		return classify("delete amenity", err, "")
	}

	invalidate(ctx, s.Cache, cacheKeyActiveAmenities)
	return nil
}
