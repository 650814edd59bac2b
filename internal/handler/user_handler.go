package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/GoArmGo/PlacesApp/internal/core/ports"
	"github.com/GoArmGo/PlacesApp/internal/usecase"
	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UserHandler — обработчик HTTP-запросов для работы с пользователями.
type UserHandler struct {
	userUseCase   usecase.UserUseCase
	fileStorage   ports.FileStorage
	uploadLimiter chan struct{}
	logger        *slog.Logger
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(
	uc usecase.UserUseCase,
	fileStorage ports.FileStorage,
	limiter chan struct{},
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase:   uc,
		fileStorage:   fileStorage,
		uploadLimiter: limiter,
		logger:        logger,
	}
}

// GetUsers — возвращает всех пользователей (без хешей паролей).
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUseCase.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"users": users}, h.logger)
}

// uploadFormImage загружает файл из multipart-поля "image" в файловое
// хранилище и возвращает ключ объекта. Лимитер ограничивает число
// параллельных загрузок.
func uploadFormImage(r *http.Request, fileStorage ports.FileStorage, limiter chan struct{}, prefix string) (string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", apperr.Validation("Invalid inputs passed, please check your data.")
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New(), path.Ext(header.Filename))

	limiter <- struct{}{}
	defer func() { <-limiter }()

	if _, err := fileStorage.UploadFile(r.Context(), key, file, contentType); err != nil {
		return "", apperr.Persistence("Could not upload image, please try again.", err)
	}
	return key, nil
}

// Signup — регистрирует пользователя; принимает multipart-форму
// с полями name, email, password и файлом image.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.", h.logger)
		return
	}

	imageKey, err := uploadFormImage(r, h.fileStorage, h.uploadLimiter, "avatars")
	if err != nil {
		h.logger.Error("avatar upload failed", "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	result, err := h.userUseCase.Signup(r.Context(), usecase.SignupInput{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		ImageKey: imageKey,
	})
	if err != nil {
		h.logger.Error("signup failed", "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	respondWithJSON(w, http.StatusCreated, result, h.logger)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login — проверяет учетные данные и выдает токен.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid inputs passed, please check your data.", h.logger)
		return
	}

	result, err := h.userUseCase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("login failed", "error", err)
		respondWithError(w, apperr.StatusOf(err), apperr.MessageOf(err), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, result, h.logger)
}
