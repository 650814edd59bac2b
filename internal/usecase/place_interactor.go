package usecase

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/GoArmGo/PlacesApp/internal/core/ports"
	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/GoArmGo/PlacesApp/internal/messaging/payloads"
	"github.com/GoArmGo/PlacesApp/internal/validation"
	"github.com/google/uuid"
)

// placeUseCase implements PlaceUseCase
type placeUseCase struct {
	placeStorage ports.PlaceStorage
	placeReader  ports.PlaceReader
	userStorage  ports.UserStorage
	geocoder     ports.Geocoder
	fileStorage  ports.FileStorage
	cleanup      ports.FileCleanupPublisher
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewPlaceUseCase создает новый экземпляр PlaceUseCase
func NewPlaceUseCase(
	placeStorage ports.PlaceStorage,
	placeReader ports.PlaceReader,
	userStorage ports.UserStorage,
	geocoder ports.Geocoder,
	fileStorage ports.FileStorage,
	cleanup ports.FileCleanupPublisher,
	validator *validation.Validator,
	logger *slog.Logger,
) PlaceUseCase {
	return &placeUseCase{
		placeStorage: placeStorage,
		placeReader:  placeReader,
		userStorage:  userStorage,
		geocoder:     geocoder,
		fileStorage:  fileStorage,
		cleanup:      cleanup,
		validator:    validator,
		logger:       logger,
	}
}

// scheduleCleanup ставит осиротевший файл в очередь на удаление.
// Неудача постановки только логируется и никогда не эскалируется.
func (uc *placeUseCase) scheduleCleanup(ctx context.Context, key, reason string) {
	if key == "" {
		return
	}
	err := uc.cleanup.PublishFileCleanup(ctx, payloads.FileCleanupPayload{ObjectKey: key, Reason: reason})
	if err != nil {
		uc.logger.Error("failed to schedule file cleanup", "key", key, "reason", reason, "error", err)
	}
}

// GetPlaceByID получает место для публичного просмотра
func (uc *placeUseCase) GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	place, err := uc.placeReader.GetPlaceByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong, could not find a place.", err)
	}
	if place == nil {
		return nil, apperr.NotFound("Could not find a place for the provided id.")
	}
	return place, nil
}

// ListPlacesByUser получает все места пользователя
func (uc *placeUseCase) ListPlacesByUser(ctx context.Context, userID uuid.UUID) ([]domain.Place, error) {
	places, err := uc.placeReader.ListPlacesByCreator(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("Fetching places failed, please try again later.", err)
	}
	if len(places) == 0 {
		return nil, apperr.NotFound("Could not find places for the provided user id.")
	}
	return places, nil
}

// CreatePlace — связанное создание: валидация, геокодирование, поиск
// владельца, затем одна транзакция на вставку места и добавление его id
// в список владельца. Изображение уже лежит в файловом хранилище до
// вызова, поэтому каждый путь отказа планирует его удаление.
func (uc *placeUseCase) CreatePlace(ctx context.Context, in CreatePlaceInput) (*domain.Place, error) {
	if err := uc.validator.Struct(in); err != nil {
		uc.scheduleCleanup(ctx, in.ImageKey, "create place validation failed")
		return nil, err
	}

	location, err := uc.geocoder.Resolve(ctx, in.Address)
	if err != nil {
		uc.scheduleCleanup(ctx, in.ImageKey, "create place geocoding failed")
		return nil, err
	}

	owner, err := uc.userStorage.GetUserByID(ctx, in.CreatorID)
	if err != nil {
		uc.scheduleCleanup(ctx, in.ImageKey, "create place owner lookup failed")
		return nil, apperr.Persistence("Creating place failed, please try again.", err)
	}
	if owner == nil {
		uc.scheduleCleanup(ctx, in.ImageKey, "create place owner missing")
		return nil, apperr.NotFound("Could not find user for provided id.")
	}

	place := &domain.Place{
		Title:       in.Title,
		Description: in.Description,
		Address:     in.Address,
		Lat:         location.Lat,
		Lng:         location.Lng,
		Image:       in.ImageKey,
		CreatorID:   owner.ID,
	}

	if err := uc.placeStorage.CreatePlaceLinked(ctx, place); err != nil {
		// транзакция откатилась: места нет, список владельца не тронут,
		// а загруженный файл осиротел
		uc.scheduleCleanup(ctx, in.ImageKey, "create place transaction rolled back")
		return nil, apperr.Persistence("Creating place failed, please try again.", err)
	}

	uc.logger.Info("place created", "place_id", place.ID, "creator_id", place.CreatorID)
	return place, nil
}

// UpdatePlace меняет title/description после проверки владения
func (uc *placeUseCase) UpdatePlace(ctx context.Context, placeID, callerID uuid.UUID, in UpdatePlaceInput) (*domain.Place, error) {
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}

	place, err := uc.placeStorage.GetPlaceByID(ctx, placeID)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong, could not update place.", err)
	}
	if place == nil {
		return nil, apperr.NotFound("Could not find place for this id.")
	}

	if place.CreatorID != callerID {
		uc.logger.Warn("update denied: caller is not the creator", "place_id", placeID, "caller_id", callerID)
		return nil, apperr.Auth("You are not allowed to edit this place.", http.StatusForbidden)
	}

	place.Title = in.Title
	place.Description = in.Description

	if err := uc.placeStorage.UpdatePlace(ctx, place); err != nil {
		return nil, apperr.Persistence("Something went wrong, could not update place.", err)
	}

	uc.logger.Info("place updated", "place_id", place.ID)
	return place, nil
}

// DeletePlace — связанное удаление: ассоциативная выборка с владельцем,
// проверка владения, одна транзакция на удаление места и отвязку от
// владельца, затем best-effort удаление изображения. При откате файл
// остается: запись пережила откат и все еще на него ссылается.
func (uc *placeUseCase) DeletePlace(ctx context.Context, placeID, callerID uuid.UUID) error {
	place, owner, err := uc.placeStorage.GetPlaceWithOwner(ctx, placeID)
	if err != nil {
		return apperr.Persistence("Something went wrong, could not delete place.", err)
	}
	if place == nil {
		return apperr.NotFound("Could not find place for this id.")
	}

	if owner.ID != callerID {
		uc.logger.Warn("delete denied: caller is not the creator", "place_id", placeID, "caller_id", callerID)
		return apperr.Auth("You are not allowed to delete this place.", http.StatusForbidden)
	}

	imageKey := place.Image

	if err := uc.placeStorage.DeletePlaceLinked(ctx, place); err != nil {
		return apperr.Persistence("Something went wrong, could not delete place.", err)
	}

	// коммит состоялся: запись — источник истины, файл лишь артефакт.
	// Неудача удаления логируется и уходит в очередь на повтор.
	if imageKey != "" {
		if err := uc.fileStorage.DeleteFile(ctx, imageKey); err != nil {
			uc.logger.Error("failed to delete place image, scheduling retry", "key", imageKey, "error", err)
			uc.scheduleCleanup(ctx, imageKey, "delete place image retry")
		}
	}

	uc.logger.Info("place deleted", "place_id", placeID, "creator_id", owner.ID)
	return nil
}
