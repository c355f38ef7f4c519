package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yariga/property-api/internal/domain"
	"github.com/yariga/property-api/internal/service"
)

// PropertyHandler handles property-related HTTP requests.
type PropertyHandler struct {
	properties *service.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// HandleList returns the filtered page of properties. The pre-window
// total always travels in the X-Total-Count header.
func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := service.ListParams{
		PropertyType: query.Get("propertyType"),
		TitleLike:    query.Get("title_like"),
		Sort:         query.Get("_sort"),
		Order:        query.Get("_order"),
		Start:        query.Get("_start"),
		End:          query.Get("_end"),
	}

	items, total, err := h.properties.List(r.Context(), params)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("list properties", "error", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	w.Header().Set("Access-Control-Expose-Headers", "X-Total-Count")
	writeJSON(w, http.StatusOK, toPropertyDTOs(items))
}

// HandleGet returns one property with its owner resolved.
func (h *PropertyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	property, err := h.properties.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		slog.Error("get property", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toPropertyDTO(property))
}

type createPropertyRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PropertyType string  `json:"propertyType"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	Photo        string  `json:"photo"`
	Email        string  `json:"email"`
}

// HandleCreate creates a property owned by the user behind the supplied
// email.
func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	property, err := h.properties.Create(r.Context(), service.CreatePropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Location:     req.Location,
		Price:        req.Price,
		Photo:        req.Photo,
		Email:        req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeMessage(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("create property", "error", err)
			writeMessage(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, toPropertyDTO(property))
}

type updatePropertyRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	PropertyType *string  `json:"propertyType"`
	Location     *string  `json:"location"`
	Price        *float64 `json:"price"`
	Photo        *string  `json:"photo"`
}

// HandleUpdate applies a partial update; a supplied photo goes through
// the upload gateway before it is stored.
func (h *PropertyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updatePropertyRequest
	if err := readJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.properties.Update(r.Context(), id, service.UpdatePropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		PropertyType: req.PropertyType,
		Location:     req.Location,
		Price:        req.Price,
		Photo:        req.Photo,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		slog.Error("update property", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeMessage(w, http.StatusOK, "Property updated successfully")
}

// HandleDelete removes a property and its entry in the owner's list.
func (h *PropertyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.properties.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Property not found")
			return
		}
		slog.Error("delete property", "id", id, "error", err)
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeMessage(w, http.StatusOK, "Property deleted successfully")
}
