package services

import (
	"context"
	"log"

	"roomrental-backend/models"

	"gorm.io/gorm"
)

var rateSortable = map[string]bool{"id": true, "room_id": true, "durations_hours": true, "price": true, "created_at": true}

type RatePlanInput struct {
	RoomID         uint     `form:"room_id" json:"room_id" binding:"required"`
	DurationsHours int      `form:"durations_hours" json:"durations_hours" binding:"required,min=1,max=8760"`
	Price          *float64 `form:"price" json:"price" binding:"required,gte=0"`
	IsActive       *bool    `form:"is_active" json:"is_active"`
}

type ActiveRate struct {
	ID             uint    `json:"id"`
	RoomID         uint    `json:"room_id"`
	DurationsHours int     `json:"durations_hours"`
	Price          float64 `json:"price"`
}

type RatePlanService struct {
	DB    *gorm.DB
	Cache CatalogCache
}

func NewRatePlanService(db *gorm.DB, cache CatalogCache) *RatePlanService {
	if cache == nil {
		cache = NoopCatalogCache{}
	}
	return &RatePlanService{DB: db, Cache: cache}
}

func preloadRateRoom(db *gorm.DB) *gorm.DB {
	return db.Preload("Room", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "room_number")
	})
}

// List searches by the owning room's name.
func (s *RatePlanService) List(ctx context.Context, q ListQuery) (Page[models.RatePlan], error) {
	q = q.normalized(rateSortable)
	query := s.DB.WithContext(ctx).Model(&models.RatePlan{}).Scopes(activeFilter("rates", q.Status))
	if q.Search != "" {
		query = query.Where("rates.room_id IN (?)",
			s.DB.Model(&models.Room{}).Select("id").Where("name LIKE ?", likePattern(q.Search)))
	}

	page, err := paginate[models.RatePlan](query, "rates", q, preloadRateRoom)
	if err != nil {
		log.Printf("Error fetching room rates: %v", err)
		return page, classify("list rates", err, "")
	}
	return page, nil
}

func (s *RatePlanService) Active(ctx context.Context) ([]ActiveRate, error) {
	return cachedLoad(ctx, s.Cache, cacheKeyActiveRates, func() ([]ActiveRate, error) {
		out := []ActiveRate{}
		err := s.DB.WithContext(ctx).Model(&models.RatePlan{}).
			Select("id", "room_id", "durations_hours", "price").
			Where("is_active = ?", true).
			Order("room_id ASC").Order("durations_hours ASC").
			Find(&out).Error
		if err != nil {
			log.Printf("Error fetching active room rates: %v", err)
			return nil, classify("list active rates", err, "")
		}
		return out, nil
	})
}

// ForRoom returns the active rates of one room, shortest first.
func (s *RatePlanService) ForRoom(ctx context.Context, roomID uint) ([]models.RatePlan, error) {
	db := s.DB.WithContext(ctx)
	var room models.Room
	if err := db.Select("id").First(&room, roomID).Error; err != nil {
		return nil, classify("list room rates", err, "")
	}

	rates := []models.RatePlan{}
	if err := db.Where("room_id = ? AND is_active = ?", roomID, true).
		Order("durations_hours ASC").Find(&rates).Error; err != nil {
		log.Printf("Error fetching rates of room %d: %v", roomID, err)
		return nil, classify("list room rates", err, "")
	}
	return rates, nil
}

func (s *RatePlanService) Get(ctx context.Context, id uint) (*models.RatePlan, error) {
	var rate models.RatePlan
	if err := s.DB.WithContext(ctx).Scopes(preloadRateRoom).First(&rate, id).Error; err != nil {
		log.Printf("Room rate not found: ID %d (%v)", id, err)
		return nil, classify("get rate", err, "")
	}
	return &rate, nil
}

func (s *RatePlanService) validate(db *gorm.DB, in RatePlanInput, ignoreID uint) error {
	if in.DurationsHours < 1 || in.DurationsHours > MaxBookingHours {
		return NewValidationError("durations_hours", "must be between 1 and 8760")
	}
	var count int64
	if err := db.Model(&models.Room{}).Where("id = ?", in.RoomID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return NewValidationError("room_id", "references a room that does not exist")
	}
	return ensureUnique(db, &models.RatePlan{}, "durations_hours", in.DurationsHours, ignoreID,
		func(tx *gorm.DB) *gorm.DB { return tx.Where("room_id = ?", in.RoomID) })
}

func (s *RatePlanService) Create(ctx context.Context, in RatePlanInput) (*models.RatePlan, error) {
	db := s.DB.WithContext(ctx)
	if err := s.validate(db, in, 0); err != nil {
		return nil, classify("create rate", err, "durations_hours")
	}

	rate := models.RatePlan{
		RoomID:         in.RoomID,
		DurationsHours: in.DurationsHours,
		Price:          derefFloat(in.Price),
		IsActive:       boolOr(in.IsActive, true),
	}
	if err := db.Create(&rate).Error; err != nil {
		log.Printf("Error creating room rate: %v", err)
		return nil, classify("create rate", err, "durations_hours")
	}

	invalidate(ctx, s.Cache, cacheKeyActiveRates)
	return &rate, nil
}

func (s *RatePlanService) Update(ctx context.Context, id uint, in RatePlanInput) (*models.RatePlan, error) {
	db := s.DB.WithContext(ctx)

	var rate models.RatePlan
	if err := db.First(&rate, id).Error; err != nil {
		log.Printf("Room rate not found for update: ID %d", id)
		return nil, classify("update rate", err, "")
	}
	if err := s.validate(db, in, rate.ID); err != nil {
		return nil, classify("update rate", err, "durations_hours")
	}

	rate.RoomID = in.RoomID
	rate.DurationsHours = in.DurationsHours
	rate.Price = derefFloat(in.Price)
	rate.IsActive = boolOr(in.IsActive, rate.IsActive)
	if err := db.Select("room_id", "durations_hours", "price", "is_active", "updated_at").Save(&rate).Error; err != nil {
		log.Printf("Error updating room rate %d: %v", id, err)
		return nil, classify("update rate", err, "durations_hours")
	}

	invalidate(ctx, s.Cache, cacheKeyActiveRates)
	return &rate, nil
}

func (s *RatePlanService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)
	res := db.Delete(&models.RatePlan{}, id)
	if res.Error != nil {
		log.Printf("Error deleting room rate %d: %v", id, res.Error)
		return classify("delete rate", res.Error, "")
	}
	if res.RowsAffected == 0 {
		log.Printf("Room rate not found for deletion: ID %d", id)
		return ErrNotFound
	}

	invalidate(ctx, s.Cache, cacheKeyActiveRates)
	return nil
}
