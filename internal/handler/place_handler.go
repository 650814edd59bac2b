package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/GoArmGo/PlacesApp/internal/core/ports"
	"github.com/GoArmGo/PlacesApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PlaceHandler — обработчик HTTP-запросов для работы с местами.
type PlaceHandler struct {
	placeUseCase  usecase.PlaceUseCase
	fileStorage   ports.FileStorage
	uploadLimiter chan struct{}
	logger        *slog.Logger
}

// NewPlaceHandler создаёт новый экземпляр PlaceHandler.
func NewPlaceHandler(
	uc usecase.PlaceUseCase,
	fileStorage ports.FileStorage,
	limiter chan struct{},
	logger *slog.Logger,
) *PlaceHandler {
	return &PlaceHandler{
		placeUseCase:  uc,
		fileStorage:   fileStorage,
		uploadLimiter: limiter,
		logger:        logger,
	}
}

// callerIdentity достает личность из контекста; запрос обязан был
// пройти через Auth middleware
func (h *PlaceHandler) callerIdentity(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusForbidden, "Authentication failed!", h.logger)
		return uuid.Nil, false
	}
	callerID, err := uuid.Parse(identity.UserID)
	if err != nil {
		h.logger.Error("invalid user id in token", "user_id", identity.UserID, "error", err)
		respondWithError(w, http.StatusForbidden, "Authentication failed!", h.logger)
		return uuid.Nil, false
	}
	return callerID, true
}

// GetPlaceByID — возвращает место по id.
func (h *PlaceHandler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	placeID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid place id.", h.logger)
		return
	}

	place, err := h.placeUseCase.GetPlaceByID(r.Context(), placeID)
	if err != nil {
		h.logger.Warn("failed to get place", "place_id", placeID, "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"place": place}, h.logger)
}

// GetPlacesByUserID — возвращает все места пользователя.
func (h *PlaceHandler) GetPlacesByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "uid"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user id.", h.logger)
		return
	}

	places, err := h.placeUseCase.ListPlacesByUser(r.Context(), userID)
	if err != nil {
		h.logger.Warn("failed to list places by user", "user_id", userID, "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"places": places}, h.logger)
}

// CreatePlace — создает место; принимает multipart-форму с полями
// title, description, address и файлом image.
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.callerIdentity(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.", h.logger)
		return
	}

	imageKey, err := uploadFormImage(r, h.fileStorage, h.uploadLimiter, "places")
	if err != nil {
		h.logger.Error("place image upload failed", "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	place, err := h.placeUseCase.CreatePlace(r.Context(), usecase.CreatePlaceInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Address:     r.FormValue("address"),
		ImageKey:    imageKey,
		CreatorID:   callerID,
	})
	if err != nil {
		h.logger.Error("failed to create place", "creator_id", callerID, "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"place": place}, h.logger)
}

type updatePlaceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdatePlace — обновляет title/description места; только для создателя.
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.callerIdentity(w, r)
	if !ok {
		return
	}

	placeID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid place id.", h.logger)
		return
	}

	var req updatePlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.", h.logger)
		return
	}

	place, err := h.placeUseCase.UpdatePlace(r.Context(), placeID, callerID, usecase.UpdatePlaceInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Warn("failed to update place", "place_id", placeID, "caller_id", callerID, "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"place": place}, h.logger)
}

// DeletePlace — удаляет место вместе с изображением; только для создателя.
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.callerIdentity(w, r)
	if !ok {
		return
	}

	placeID, err := uuid.Parse(chi.URLParam(r, "pid"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid place id.", h.logger)
		return
	}

	if err := h.placeUseCase.DeletePlace(r.Context(), placeID, callerID); err != nil {
		h.logger.Warn("failed to delete place", "place_id", placeID, "caller_id", callerID, "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Deleted place."}, h.logger)
}
