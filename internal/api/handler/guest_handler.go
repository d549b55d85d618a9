package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/elexus/guest-registry/internal/core/domain"
	"github.com/elexus/guest-registry/internal/core/ports"
)

// GuestHandler handles HTTP requests for guest and visit operations.
type GuestHandler struct {
	service        ports.GuestService
	maxUploadBytes int64
}

func NewGuestHandler(service ports.GuestService, maxUploadBytes int64) *GuestHandler {
	return &GuestHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// List handles GET /api/guests.
//
// @Summary      List guests with optional search and class filter
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        search        query     string  false  "Case-insensitive substring matched across name and preference fields"
// @Param        class_filter  query     string  false  "Comma-separated class values (e.g. VIP,A)"
// @Success      200           {array}   domain.Guest
// @Failure      401           {object}  errorResponse
// @Router       /api/guests [get]
func (h *GuestHandler) List(c echo.Context) error {
	filter := ports.ListGuestsFilter{
		Search:  strings.TrimSpace(c.QueryParam("search")),
		Classes: splitClasses(c.QueryParam("class_filter")),
	}

	guests, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	if guests == nil {
		guests = []domain.Guest{}
	}
	return c.JSON(http.StatusOK, guests)
}

// Create handles POST /api/guests (multipart form, optional photo).
//
// @Summary      Create a guest
// @Tags         guests
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name   formData  string  true   "Guest name"
// @Param        class  formData  string  true   "Membership class"  Enums(VIP, A, B, C, D, Lokal)
// @Param        photo  formData  file    false  "Guest photo (image, size-capped)"
// @Success      201    {object}  domain.Guest
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Router       /api/guests [post]
func (h *GuestHandler) Create(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	form, photo, err := h.bindGuestForm(c)
	if err != nil {
		return err
	}

	guest, err := h.service.Create(c.Request().Context(), toGuestInput(form), photo, accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, guest)
}

// Get handles GET /api/guests/:id.
//
// @Summary      Get a guest by id
// @Tags         guests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Guest id"
// @Success      200  {object}  domain.Guest
// @Failure      404  {object}  errorResponse
// @Router       /api/guests/{id} [get]
func (h *GuestHandler) Get(c echo.Context) error {
	id, err := guestID(c)
	if err != nil {
		return err
	}

	guest, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, guest)
}

// Update handles PUT /api/guests/:id (multipart form, optional photo).
//
// @Summary      Update a guest
// @Tags         guests
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int     true   "Guest id"
// @Param        name   formData  string  true   "Guest name"
// @Param        class  formData  string  true   "Membership class"  Enums(VIP, A, B, C, D, Lokal)
// @Param        photo  formData  file    false  "Replacement photo; previous photo is kept when omitted"
// @Success      200    {object}  domain.Guest
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/guests/{id} [put]
func (h *GuestHandler) Update(c echo.Context) error {
	id, err := guestID(c)
	if err != nil {
		return err
	}

	form, photo, err := h.bindGuestForm(c)
	if err != nil {
		return err
	}

	guest, err := h.service.Update(c.Request().Context(), id, toGuestInput(form), photo)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, guest)
}

// Delete handles DELETE /api/guests/:id.
//
// @Summary      Delete a guest
// @Tags         guests
// @Security     BearerAuth
// @Param        id  path  int  true  "Guest id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/guests/{id} [delete]
func (h *GuestHandler) Delete(c echo.Context) error {
	id, err := guestID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AddVisit handles POST /api/guests/:id/visits.
//
// @Summary      Record a visit note for a guest
// @Tags         visits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Guest id"
// @Param        body  body      visitRequest  true  "Visit note"
// @Success      201   {object}  domain.Visit
// @Failure      404   {object}  errorResponse
// @Router       /api/guests/{id}/visits [post]
func (h *GuestHandler) AddVisit(c echo.Context) error {
	accountID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := guestID(c)
	if err != nil {
		return err
	}

	var req visitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	visit, err := h.service.AddVisit(c.Request().Context(), id, req.Notes, accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, visit)
}

// ListVisits handles GET /api/guests/:id/visits.
//
// @Summary      List a guest's visits, newest first
// @Tags         visits
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Guest id"
// @Success      200  {array}   domain.Visit
// @Failure      401  {object}  errorResponse
// @Router       /api/guests/{id}/visits [get]
func (h *GuestHandler) ListVisits(c echo.Context) error {
	id, err := guestID(c)
	if err != nil {
		return err
	}

	visits, err := h.service.ListVisits(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if visits == nil {
		visits = []domain.Visit{}
	}
	return c.JSON(http.StatusOK, visits)
}

// Stats handles GET /api/stats.
//
// @Summary      Aggregate registry counters
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  errorResponse
// @Router       /api/stats [get]
func (h *GuestHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

// bindGuestForm binds and validates the shared create/update form, then reads
// the optional photo. Validation failures surface as 400s with the reason.
func (h *GuestHandler) bindGuestForm(c echo.Context) (guestForm, *ports.PhotoUpload, error) {
	var form guestForm
	if err := c.Bind(&form); err != nil {
		return guestForm{}, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return guestForm{}, nil, &domain.ValidationError{Reason: err.Error()}
	}

	photo, err := readPhoto(c, h.maxUploadBytes)
	if err != nil {
		return guestForm{}, nil, err
	}
	return form, photo, nil
}

func toGuestInput(form guestForm) ports.GuestInput {
	return ports.GuestInput{
		Name:            form.Name,
		Class:           form.Class,
		Alcohol:         form.Alcohol,
		Cigarette:       form.Cigarette,
		Cigar:           form.Cigar,
		SpecialRequests: form.SpecialRequests,
		OtherInfo:       form.OtherInfo,
	}
}

func guestID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid guest id")
	}
	return id, nil
}

func splitClasses(raw string) []string {
	if raw == "" {
		return nil
	}
	var classes []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			classes = append(classes, trimmed)
		}
	}
	return classes
}
