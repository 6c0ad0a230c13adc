package controllers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"roomrental-backend/services"
	"roomrental-backend/utils"

	"github.com/gin-gonic/gin"
)

const maxImageBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type RoomController struct {
	Rooms     *services.RoomService
	Amenities *services.AmenityService
	Rates     *services.RatePlanService
}

func NewRoomController(rooms *services.RoomService, amenities *services.AmenityService, rates *services.RatePlanService) *RoomController {
	return &RoomController{Rooms: rooms, Amenities: amenities, Rates: rates}
}

// GetRooms returns the paginated rooms plus the active amenities the room
// form offers.
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	var q services.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	rooms, err := ctrl.Rooms.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "Room not found.", "Failed to fetch rooms. Please try again.")
		return
	}
	amenities, err := ctrl.Amenities.Active(c.Request.Context())
	if err != nil {
		respondError(c, err, "Amenity not found.", "Failed to fetch rooms. Please try again.")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"rooms": rooms, "amenities": amenities})
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	room, err := ctrl.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Room not found.", "Failed to fetch room.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// GetBoard is the front desk view: active rooms with rates and active
// bookings.
func (ctrl *RoomController) GetBoard(c *gin.Context) {
	rooms, err := ctrl.Rooms.Board(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		respondError(c, err, "Room not found.", "Failed to fetch rooms. Please try again.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoomRates(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	rates, err := ctrl.Rates.ForRoom(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Room not found.", "Failed to fetch room rates.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rates)
}

// readImage pulls the optional "image" upload off a multipart form. The
// returned closer must be called once the service is done with the file.
func readImage(c *gin.Context) (*services.UploadedFile, io.Closer, error) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, services.NewValidationError("image", "could not be read")
	}
	return openImage(header)
}

func openImage(header *multipart.FileHeader) (*services.UploadedFile, io.Closer, error) {
	if header.Size > maxImageBytes {
		return nil, nil, services.NewValidationError("image", "may not be greater than 5 MB")
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, services.NewValidationError("image", "could not be read")
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, nil, services.NewValidationError("image", "could not be read")
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if !allowedImageTypes[contentType] {
		f.Close()
		return nil, nil, services.NewValidationError("image", "must be a jpeg, png, gif or webp image")
	}

	return &services.UploadedFile{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Reader:      io.MultiReader(bytes.NewReader(head), f),
	}, f, nil
}

func (ctrl *RoomController) bindRoom(c *gin.Context) (services.RoomInput, io.Closer, bool) {
	var in services.RoomInput
	if err := c.ShouldBind(&in); err != nil {
		respondBindError(c, err)
		return in, nil, false
	}
	image, closer, err := readImage(c)
	if err != nil {
		respondError(c, err, "", "")
		return in, nil, false
	}
	in.Image = image
	return in, closer, true
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	in, closer, ok := ctrl.bindRoom(c)
	if !ok {
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	room, err := ctrl.Rooms.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Room not found.", "Failed to create room.")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	in, closer, ok := ctrl.bindRoom(c)
	if !ok {
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	room, err := ctrl.Rooms.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err, "Room not found.", "Failed to update room.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		respondBadID(c)
		return
	}
	if err := ctrl.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Room not found or could not be deleted.", "Failed to delete room.")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted successfully!"})
}
