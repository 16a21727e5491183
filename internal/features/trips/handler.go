package trips

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/travlr/internal/pkg/cloudinary"
	"github.com/xyz-asif/travlr/internal/pkg/logger"
	"github.com/xyz-asif/travlr/internal/pkg/pagination"
	"github.com/xyz-asif/travlr/internal/pkg/response"
	apperrors "github.com/xyz-asif/travlr/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List trips
// @Description All trips sorted by start date. upcoming=true keeps only trips that have not started.
// @Tags trips
// @Produce json
// @Param upcoming query bool false "Only upcoming trips"
// @Success 200 {array} TripResponse
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /trips [get]
func (h *Handler) List(c *gin.Context) {
	upcoming, _ := strconv.ParseBool(c.Query("upcoming"))

	list, err := h.service.List(c.Request.Context(), upcoming)
	if err != nil {
		logger.Error("list trips: %v", err)
		response.DatabaseError(c, "Failed to load trips")
		return
	}

	if len(list) == 0 {
		response.NotFound(c, "No trips found", "NOT_FOUND")
		return
	}

	response.Success(c, ToResponses(list, h.service.Now()))
}

// Search godoc
// @Summary Search trips
// @Description Full-text search over name, description and resort
// @Tags trips
// @Produce json
// @Param q query string true "Search text"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} response.PaginatedResponse
// @Failure 400 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /trips/search [get]
func (h *Handler) Search(c *gin.Context) {
	page := pagination.FromRequest(c.Query("page"), c.Query("limit"))

	list, meta, err := h.service.Search(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			writeValidationError(c, err)
			return
		}
		logger.Error("search trips: %v", err)
		response.DatabaseError(c, "Failed to search trips")
		return
	}

	response.Paginated(c, ToResponses(list, h.service.Now()), meta)
}

// Get godoc
// @Summary Get a trip
// @Tags trips
// @Produce json
// @Param code path string true "Trip code"
// @Success 200 {object} TripResponse
// @Failure 404 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /trips/{code} [get]
func (h *Handler) Get(c *gin.Context) {
	code := c.Param("code")

	trip, err := h.service.Get(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Trip '"+code+"' not found", "NOT_FOUND")
			return
		}
		logger.Error("get trip %s: %v", code, err)
		response.DatabaseError(c, "Failed to load trip")
		return
	}

	response.Success(c, trip.ToResponse(h.service.Now()))
}

// Create godoc
// @Summary Create a trip
// @Description Validates and stores a new trip. Numbers may be sent as JSON numbers or numeric strings.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TripRequest true "Trip"
// @Success 201 {object} TripResponse
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /trips [post]
func (h *Handler) Create(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	trip, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			writeValidationError(c, err)
		case errors.Is(err, apperrors.ErrDuplicate):
			response.BadRequest(c, "Trip code already exists", "DUPLICATE_CODE")
		default:
			logger.Error("create trip: %v", err)
			response.DatabaseError(c, "Failed to create trip")
		}
		return
	}

	response.Created(c, trip.ToResponse(h.service.Now()))
}

// Update godoc
// @Summary Update a trip
// @Description Merges the sent fields onto the trip stored under code and validates the result.
// @Tags trips
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param code path string true "Trip code"
// @Param request body TripRequest true "Fields to change"
// @Success 201 {object} TripResponse
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /trips/{code} [put]
func (h *Handler) Update(c *gin.Context) {
	code := c.Param("code")

	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	trip, err := h.service.Update(c.Request.Context(), code, req)
	if err != nil {
		h.writeUpdateError(c, code, err)
		return
	}

	response.Created(c, trip.ToResponse(h.service.Now()))
}

// UploadImage godoc
// @Summary Upload a trip image
// @Description Stores the image on Cloudinary and sets the hosted URL as the trip image
// @Tags trips
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param code path string true "Trip code"
// @Param image formData file true "Image (.jpg, .jpeg, .png, .webp)"
// @Success 201 {object} TripResponse
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse
// @Router /trips/{code}/image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	code := c.Param("code")

	header, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "Image file is required", "REQUIRED_FIELD")
		return
	}

	if err := cloudinary.ValidateImageFile(header, AllowedImageExtensions); err != nil {
		response.BadRequest(c, err.Error(), string(apperrors.ReasonInvalidImageExtension))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Failed to read image file", "INVALID_FILE")
		return
	}
	defer file.Close()

	trip, err := h.service.AttachImage(c.Request.Context(), code, file)
	if err != nil {
		if errors.Is(err, cloudinary.ErrNotConfigured) {
			response.ServiceUnavailable(c, "Image storage is not configured", "STORAGE_UNAVAILABLE")
			return
		}
		h.writeUpdateError(c, code, err)
		return
	}

	response.Created(c, trip.ToResponse(h.service.Now()))
}

func (h *Handler) writeUpdateError(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.BadRequest(c, "Trip not found or not updated", "NOT_FOUND")
	case errors.Is(err, apperrors.ErrValidation):
		writeValidationError(c, err)
	case errors.Is(err, apperrors.ErrDuplicate):
		response.BadRequest(c, "Trip code already exists", "DUPLICATE_CODE")
	default:
		logger.Error("update trip %s: %v", code, err)
		response.DatabaseError(c, "Failed to update trip")
	}
}

func writeValidationError(c *gin.Context, err error) {
	var list apperrors.ValidationErrors
	if errors.As(err, &list) {
		response.ErrorWithDetails(c, http.StatusBadRequest, list.Error(), string(list.Reason()), list)
		return
	}

	var fe *apperrors.FieldError
	if errors.As(err, &fe) {
		response.ErrorWithDetails(c, http.StatusBadRequest, fe.Message, string(fe.Reason), apperrors.ValidationErrors{fe})
		return
	}

	response.BadRequest(c, err.Error(), "VALIDATION_FAILED")
}
