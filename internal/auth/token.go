package auth

import (
	"net/http"
	"time"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL — срок жизни токена
const DefaultTokenTTL = time.Hour

// Claims — структура утверждений: стандартные утверждения плюс
// идентификатор и email пользователя
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Identity — проверенная личность из токена
type Identity struct {
	UserID string
	Email  string
}

// TokenService выпускает и проверяет подписанные JWT (HS256).
// Токен самодостаточен: проверка не требует похода в БД.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenService(secretKey []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secretKey: secretKey, ttl: ttl}
}

// Issue подписывает токен с userId, email и сроком жизни ttl
func (s *TokenService) Issue(userID, email string) (string, error) {
	if len(s.secretKey) == 0 {
		return "", apperr.Signing(jwt.ErrInvalidKey)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", apperr.Signing(err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена.
// Любой дефект (формат, подпись, истекший срок) дает одну и ту же
// ошибку аутентификации — никакого частичного доверия.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, apperr.Auth("invalid or expired token", http.StatusForbidden)
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}
