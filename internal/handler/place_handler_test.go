package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/GoArmGo/PlacesApp/internal/auth"
	"github.com/GoArmGo/PlacesApp/internal/domain"
	"github.com/GoArmGo/PlacesApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlaceUseCase возвращает заранее заданные результаты
type fakePlaceUseCase struct {
	place       *domain.Place
	places      []domain.Place
	err         error
	lastCreate  usecase.CreatePlaceInput
	deletedID   uuid.UUID
	deleteCalls int
}

func (f *fakePlaceUseCase) GetPlaceByID(ctx context.Context, id uuid.UUID) (*domain.Place, error) {
	return f.place, f.err
}

func (f *fakePlaceUseCase) ListPlacesByUser(ctx context.Context, userID uuid.UUID) ([]domain.Place, error) {
	return f.places, f.err
}

func (f *fakePlaceUseCase) CreatePlace(ctx context.Context, in usecase.CreatePlaceInput) (*domain.Place, error) {
	f.lastCreate = in
	return f.place, f.err
}

func (f *fakePlaceUseCase) UpdatePlace(ctx context.Context, placeID, callerID uuid.UUID, in usecase.UpdatePlaceInput) (*domain.Place, error) {
	return f.place, f.err
}

func (f *fakePlaceUseCase) DeletePlace(ctx context.Context, placeID, callerID uuid.UUID) error {
	f.deletedID = placeID
	f.deleteCalls++
	return f.err
}

type fakeUploads struct{}

func (fakeUploads) UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	return "http://files.local/" + key, nil
}

func (fakeUploads) DeleteFile(ctx context.Context, key string) error { return nil }

func newPlaceRouter(uc usecase.PlaceUseCase, tokens *auth.TokenService) chi.Router {
	h := NewPlaceHandler(uc, fakeUploads{}, make(chan struct{}, 1), testLogger())

	r := chi.NewRouter()
	r.Get("/api/places/user/{uid}", h.GetPlacesByUserID)
	r.Get("/api/places/{pid}", h.GetPlaceByID)
	r.Group(func(r chi.Router) {
		r.Use(Auth(tokens, testLogger()))
		r.Post("/api/places", h.CreatePlace)
		r.Patch("/api/places/{pid}", h.UpdatePlace)
		r.Delete("/api/places/{pid}", h.DeletePlace)
	})
	return r
}

func issueTestToken(t *testing.T, tokens *auth.TokenService, userID uuid.UUID) string {
	t.Helper()
	token, err := tokens.Issue(userID.String(), "alice@example.com")
	require.NoError(t, err)
	return token
}

func testTokens() *auth.TokenService {
	return auth.NewTokenService([]byte("test-secret"), auth.DefaultTokenTTL)
}

func TestGetPlaceByID_ResponseShape(t *testing.T) {
	place := &domain.Place{
		ID:          uuid.New(),
		Title:       "Empire State Building",
		Description: "Famous sky scraper",
		Address:     "20 W 34th St",
		Lat:         40.7484,
		Lng:         -73.9857,
		CreatorID:   uuid.New(),
	}
	router := newPlaceRouter(&fakePlaceUseCase{place: place}, testTokens())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/places/"+place.ID.String(), nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Place struct {
			Title    string `json:"title"`
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"place"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Empire State Building", body.Place.Title)
	assert.Equal(t, 40.7484, body.Place.Location.Lat)
	assert.Equal(t, -73.9857, body.Place.Location.Lng)
}

func TestGetPlaceByID_InvalidID(t *testing.T) {
	router := newPlaceRouter(&fakePlaceUseCase{}, testTokens())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/places/not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlaceByID_NotFound(t *testing.T) {
	uc := &fakePlaceUseCase{err: apperr.NotFound("Could not find a place for the provided id.")}
	router := newPlaceRouter(uc, testTokens())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/places/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Could not find a place for the provided id."}`, rec.Body.String())
}

func TestCreatePlace_RequiresToken(t *testing.T) {
	router := newPlaceRouter(&fakePlaceUseCase{}, testTokens())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/places", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Authentication failed!"}`, rec.Body.String())
}

func TestCreatePlace_Multipart(t *testing.T) {
	callerID := uuid.New()
	place := &domain.Place{ID: uuid.New(), Title: "Empire State Building", CreatorID: callerID}
	uc := &fakePlaceUseCase{place: place}
	tokens := testTokens()
	router := newPlaceRouter(uc, tokens)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Empire State Building"))
	require.NoError(t, mw.WriteField("description", "Famous sky scraper"))
	require.NoError(t, mw.WriteField("address", "20 W 34th St"))
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/places", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, tokens, callerID))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Empire State Building", uc.lastCreate.Title)
	assert.Equal(t, callerID, uc.lastCreate.CreatorID)
	assert.NotEmpty(t, uc.lastCreate.ImageKey)
}

func TestCreatePlace_MissingImage(t *testing.T) {
	tokens := testTokens()
	router := newPlaceRouter(&fakePlaceUseCase{}, tokens)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Empire State Building"))
	require.NoError(t, mw.Close())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/places", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, tokens, uuid.New()))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeletePlace_Success(t *testing.T) {
	callerID := uuid.New()
	placeID := uuid.New()
	uc := &fakePlaceUseCase{}
	tokens := testTokens()
	router := newPlaceRouter(uc, tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/places/"+placeID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, tokens, callerID))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Deleted place."}`, rec.Body.String())
	assert.Equal(t, placeID, uc.deletedID)
	assert.Equal(t, 1, uc.deleteCalls)
}

func TestDeletePlace_DeniedForNonCreator(t *testing.T) {
	uc := &fakePlaceUseCase{err: apperr.Auth("You are not allowed to delete this place.", http.StatusForbidden)}
	tokens := testTokens()
	router := newPlaceRouter(uc, tokens)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/places/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, tokens, uuid.New()))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"You are not allowed to delete this place."}`, rec.Body.String())
}

func TestUpdatePlace_ResponseShape(t *testing.T) {
	callerID := uuid.New()
	place := &domain.Place{ID: uuid.New(), Title: "New title", Description: "New description", CreatorID: callerID}
	tokens := testTokens()
	router := newPlaceRouter(&fakePlaceUseCase{place: place}, tokens)

	body := bytes.NewBufferString(`{"title":"New title","description":"New description"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/places/"+place.ID.String(), body)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, tokens, callerID))
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Place struct {
			Title string `json:"title"`
		} `json:"place"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "New title", resp.Place.Title)
}
