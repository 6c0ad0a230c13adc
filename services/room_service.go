package services

import (
	"context"
	"log"
	"strings"

	"roomrental-backend/models"

	"gorm.io/gorm"
)

const roomImageNamespace = "rooms"

var roomSortable = map[string]bool{
	"id": true, "room_number": true, "name": true, "type": true, "status": true, "created_at": true,
}

// RoomInput is the room form. RoomAmenities is a comma separated list of
// amenity ids: nil keeps the current links, "" clears them.
type RoomInput struct {
	RoomNumber    string  `form:"room_number" json:"room_number" binding:"required,notblank,max=250"`
	Name          string  `form:"name" json:"name" binding:"required,notblank,max=255"`
	Type          string  `form:"type" json:"type" binding:"required,notblank,max=255"`
	Status        string  `form:"status" json:"status" binding:"required,notblank,max=255"`
	RoomAmenities *string `form:"room_amenities" json:"room_amenities" binding:"omitempty,idlist"`
	IsActive      *bool   `form:"is_active" json:"is_active"`

	Image *UploadedFile `form:"-" json:"-"`
}

type RoomService struct {
	DB      *gorm.DB
	Storage FileStorage
	Cache   CatalogCache
}

func NewRoomService(db *gorm.DB, storage FileStorage, cache CatalogCache) *RoomService {
	if cache == nil {
		cache = NoopCatalogCache{}
	}
	return &RoomService{DB: db, Storage: storage, Cache: cache}
}

func preloadRoomAmenities(db *gorm.DB) *gorm.DB {
	return db.Preload("RoomAmenities", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("room_amenity.id ASC")
	}).Preload("RoomAmenities.Amenity")
}

func (s *RoomService) List(ctx context.Context, q ListQuery) (Page[models.Room], error) {
	q = q.normalized(roomSortable)
	query := s.DB.WithContext(ctx).Model(&models.Room{}).Scopes(activeFilter("rooms", q.Status))
	if q.Search != "" {
		like := likePattern(q.Search)
		query = query.Where("(rooms.room_number LIKE ? OR rooms.name LIKE ?)", like, like)
	}

	page, err := paginate[models.Room](query, "rooms", q, preloadRoomAmenities)
	if err != nil {
		log.Printf("Error fetching rooms: %v", err)
		return page, classify("list rooms", err, "")
	}
	return page, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).
		Scopes(preloadRoomAmenities).
		Preload("Rates", func(tx *gorm.DB) *gorm.DB { return tx.Order("durations_hours ASC") }).
		First(&room, id).Error
	if err != nil {
		log.Printf("Room not found: ID %d (%v)", id, err)
		return nil, classify("get room", err, "")
	}
	return &room, nil
}

// Board lists active rooms with their active rates and active bookings,
// the data behind the front desk view. status filters on the room's
// catalog status (VACANT/OCCUPIED); "" or "all" disables it.
func (s *RoomService) Board(ctx context.Context, search, status string) ([]models.Room, error) {
	query := s.DB.WithContext(ctx).Model(&models.Room{}).Where("rooms.is_active = ?", true)
	if search = strings.TrimSpace(search); search != "" {
		like := likePattern(search)
		query = query.Where("(rooms.room_number LIKE ? OR rooms.name LIKE ?)", like, like)
	}
	if status = strings.TrimSpace(status); status != "" && !strings.EqualFold(status, "all") {
		query = query.Where("rooms.status = ?", strings.ToUpper(status))
	}

	rooms := []models.Room{}
	err := query.
		Preload("Rates", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_active = ?", true).Order("durations_hours ASC")
		}).
		Preload("Bookings", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", models.BookingActive).Order("check_in DESC")
		}).
		Preload("Bookings.Tenant").
		Order("rooms.room_number ASC").
		Find(&rooms).Error
	if err != nil {
		log.Printf("Error fetching room board: %v", err)
		return nil, classify("room board", err, "")
	}
	return rooms, nil
}

func (s *RoomService) checkAmenities(db *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := db.Model(&models.Amenity{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return NewValidationError("room_amenities", "contains an unknown amenity")
	}
	return nil
}

// replaceAmenities drops every link of the room and inserts one active
// link per id.
func replaceAmenities(tx *gorm.DB, roomID uint, ids []uint) error {
	if err := tx.Where("room_id = ?", roomID).Delete(&models.RoomAmenity{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	links := make([]models.RoomAmenity, 0, len(ids))
	for _, id := range ids {
		links = append(links, models.RoomAmenity{RoomID: roomID, AmenityID: id, IsActive: true})
	}
	return tx.Create(&links).Error
}

// ReplaceAmenities swaps the full amenity set of a room.
func (s *RoomService) ReplaceAmenities(ctx context.Context, roomID uint, ids []uint) error {
	db := s.DB.WithContext(ctx)
	var room models.Room
	if err := db.Select("id").First(&room, roomID).Error; err != nil {
		return classify("replace room amenities", err, "")
	}
	ids = dedupeIDs(ids)
	if err := s.checkAmenities(db, ids); err != nil {
		return classify("replace room amenities", err, "room_amenities")
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return replaceAmenities(tx, roomID, ids)
	}); err != nil {
		log.Printf("Error replacing amenities of room %d: %v", roomID, err)
		return classify("replace room amenities", err, "room_amenities")
	}
	return nil
}

func (s *RoomService) storeImage(ctx context.Context, file *UploadedFile) (*string, error) {
	if file == nil || s.Storage == nil {
		return nil, nil
	}
	path, err := s.Storage.Store(ctx, *file, roomImageNamespace)
	if err != nil {
		return nil, &PersistenceError{Op: "store room image", Err: err}
	}
	return &path, nil
}

func (s *RoomService) dropImage(ctx context.Context, path *string) {
	if path == nil || s.Storage == nil {
		return
	}
	if err := s.Storage.Delete(ctx, *path); err != nil {
		log.Printf("warning: failed to delete room image %s: %v", *path, err)
	}
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (*models.Room, error) {
	db := s.DB.WithContext(ctx)

	roomNumber := strings.TrimSpace(in.RoomNumber)
	if err := ensureUnique(db, &models.Room{}, "room_number", roomNumber, 0); err != nil {
		return nil, classify("create room", err, "room_number")
	}
	amenityIDs, err := parseAmenityIDs(in.RoomAmenities)
	if err != nil {
		return nil, err
	}
	if err := s.checkAmenities(db, amenityIDs); err != nil {
		return nil, classify("create room", err, "room_amenities")
	}

	image, err := s.storeImage(ctx, in.Image)
	if err != nil {
		log.Printf("Error storing image for room %s: %v", roomNumber, err)
		return nil, err
	}

	room := models.Room{
		RoomNumber: roomNumber,
		Name:       strings.TrimSpace(in.Name),
		Type:       strings.TrimSpace(in.Type),
		Image:      image,
		Status:     strings.TrimSpace(in.Status),
		IsActive:   boolOr(in.IsActive, true),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		return replaceAmenities(tx, room.ID, amenityIDs)
	})
	if err != nil {
		log.Printf("Error creating room %s: %v", roomNumber, err)
		s.dropImage(ctx, image)
		return nil, classify("create room", err, "room_number")
	}

	return s.Get(ctx, room.ID)
}

func (s *RoomService) Update(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	db := s.DB.WithContext(ctx)

	var room models.Room
	if err := db.First(&room, id).Error; err != nil {
		log.Printf("Room not found for update: ID %d", id)
		return nil, classify("update room", err, "")
	}

	roomNumber := strings.TrimSpace(in.RoomNumber)
	if err := ensureUnique(db, &models.Room{}, "room_number", roomNumber, room.ID); err != nil {
		return nil, classify("update room", err, "room_number")
	}
	var amenityIDs []uint
	if in.RoomAmenities != nil {
		ids, err := parseAmenityIDs(in.RoomAmenities)
		if err != nil {
			return nil, err
		}
		if err := s.checkAmenities(db, ids); err != nil {
			return nil, classify("update room", err, "room_amenities")
		}
		amenityIDs = ids
	}

	newImage, err := s.storeImage(ctx, in.Image)
	if err != nil {
		log.Printf("Error storing image for room %d: %v", id, err)
		return nil, err
	}
	oldImage := room.Image

	room.RoomNumber = roomNumber
	room.Name = strings.TrimSpace(in.Name)
	room.Type = strings.TrimSpace(in.Type)
	room.Status = strings.TrimSpace(in.Status)
	room.IsActive = boolOr(in.IsActive, room.IsActive)
	if newImage != nil {
		room.Image = newImage
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("room_number", "name", "type", "image", "status", "is_active", "updated_at").
			Save(&room).Error; err != nil {
			return err
		}
		if in.RoomAmenities == nil {
			return nil
		}
		return replaceAmenities(tx, room.ID, amenityIDs)
	})
	if err != nil {
		log.Printf("Error updating room (ID: %d): %v", id, err)
		s.dropImage(ctx, newImage)
		return nil, classify("update room", err, "room_number")
	}
	if newImage != nil {
		s.dropImage(ctx, oldImage)
	}

	return s.Get(ctx, room.ID)
}

// Delete removes the room together with its amenity links, rates and
// bookings, then its stored image.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)

	var room models.Room
	if err := db.First(&room, id).Error; err != nil {
		log.Printf("Room not found for deletion: ID %d", id)
		return classify("delete room", err, "")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&models.RoomAmenity{}, &models.RatePlan{}, &models.Booking{}} {
			if err := tx.Where("room_id = ?", room.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&room).Error
	})
	if err != nil {
		log.Printf("Error deleting room (ID: %d): %v", id, err)
		return classify("delete room", err, "")
	}

	invalidate(ctx, s.Cache, cacheKeyActiveRates)
	s.dropImage(ctx, room.Image)
	return nil
}
