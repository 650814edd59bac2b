package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/GoArmGo/PlacesApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

var errStorage = errors.New("storage unavailable")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserStorage — хранилище пользователей в памяти для тестов
type fakeUserStorage struct {
	usersByEmail map[string]*domain.User
	usersByID    map[uuid.UUID]*domain.User
	createErr    error
	lookupErr    error
	created      []*domain.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{
		usersByEmail: make(map[string]*domain.User),
		usersByID:    make(map[uuid.UUID]*domain.User),
	}
}

func (f *fakeUserStorage) addUser(u *domain.User) {
	f.usersByEmail[u.Email] = u
	f.usersByID[u.ID] = u
}

func (f *fakeUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.addUser(user)
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.usersByEmail[email], nil
}

func (f *fakeUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.usersByID[id], nil
}

func (f *fakeUserStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	users := make([]domain.User, 0, len(f.usersByID))
	for _, u := range f.usersByID {
		users = append(users, *u)
	}
	return users, nil
}

// fakePlaceStorage — транзакционное хранилище мест для тестов
type fakePlaceStorage struct {
	places     map[uuid.UUID]*domain.Place
	owners     map[uuid.UUID]*domain.User
	createErr  error
	updateErr  error
	deleteErr  error
	lookupErr  error
	createdIDs []uuid.UUID
	deletedIDs []uuid.UUID
}

func newFakePlaceStorage() *fakePlaceStorage {
	return &fakePlaceStorage{
		places: make(map[uuid.UUID]*domain.Place),
		owners: make(map[uuid.UUID]*domain.User),
	}
}

func (f *fakePlaceStorage) GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.places[id], nil
}

func (f *fakePlaceStorage) GetPlaceWithOwner(ctx context.Context, id uuid.UUID) (*domain.Place, *domain.User, error) {
	if f.lookupErr != nil {
		return nil, nil, f.lookupErr
	}
	place := f.places[id]
	if place == nil {
		return nil, nil, nil
	}
	return place, f.owners[id], nil
}

func (f *fakePlaceStorage) CreatePlaceLinked(ctx context.Context, place *domain.Place) error {
	if f.createErr != nil {
		return f.createErr
	}
	if place.ID == uuid.Nil {
		place.ID = uuid.New()
	}
	f.places[place.ID] = place
	f.createdIDs = append(f.createdIDs, place.ID)
	return nil
}

func (f *fakePlaceStorage) UpdatePlace(ctx context.Context, place *domain.Place) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.places[place.ID] = place
	return nil
}

func (f *fakePlaceStorage) DeletePlaceLinked(ctx context.Context, place *domain.Place) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.places, place.ID)
	f.deletedIDs = append(f.deletedIDs, place.ID)
	return nil
}

// fakePlaceReader — читающая сторона для публичных запросов
type fakePlaceReader struct {
	places    map[uuid.UUID]*domain.Place
	byCreator map[uuid.UUID][]domain.Place
	err       error
}

func newFakePlaceReader() *fakePlaceReader {
	return &fakePlaceReader{
		places:    make(map[uuid.UUID]*domain.Place),
		byCreator: make(map[uuid.UUID][]domain.Place),
	}
}

func (f *fakePlaceReader) GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.places[id], nil
}

func (f *fakePlaceReader) ListPlacesByCreator(ctx context.Context, creatorID uuid.UUID) ([]domain.Place, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCreator[creatorID], nil
}

// fakeGeocoder отдает фиксированные координаты либо ошибку
type fakeGeocoder struct {
	location domain.Location
	err      error
}

func (f *fakeGeocoder) Resolve(ctx context.Context, address string) (domain.Location, error) {
	if f.err != nil {
		return domain.Location{}, f.err
	}
	return f.location, nil
}

// fakeFileStorage фиксирует удаления файлов
type fakeFileStorage struct {
	deleted   []string
	deleteErr error
}

func (f *fakeFileStorage) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	return "http://files.local/" + key, nil
}

func (f *fakeFileStorage) DeleteFile(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

// fakeCleanupPublisher фиксирует запланированные задачи очистки
type fakeCleanupPublisher struct {
	published []payloads.FileCleanupPayload
}

func (f *fakeCleanupPublisher) PublishFileCleanup(ctx context.Context, payload payloads.FileCleanupPayload) error {
	f.published = append(f.published, payload)
	return nil
}
