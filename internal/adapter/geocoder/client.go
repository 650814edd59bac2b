package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/GoArmGo/PlacesApp/internal/apperr"
	"github.com/GoArmGo/PlacesApp/internal/config"
	"github.com/GoArmGo/PlacesApp/internal/domain"
)

// Client представляет клиент для взаимодействия с Google Geocoding API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewClient создает новый экземпляр геокодера.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiKey:     cfg.GeocoderAPIKey,
		baseURL:    cfg.GeocoderBaseURL,
	}
}

// Resolve переводит текстовый адрес в пару координат.
// Любая неудача (адрес не найден, ошибка провайдера) возвращается
// как ошибка геокодирования и не должна приводить к записи в БД.
func (c *Client) Resolve(ctx context.Context, address string) (domain.Location, error) {
	params := url.Values{}
	params.Add("address", address)
	params.Add("key", c.apiKey)

	endpoint := fmt.Sprintf("%s/geocode/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Location{}, apperr.Geocoding("Could not resolve address, please try again.",
			fmt.Errorf("ошибка создания HTTP-запроса к геокодеру: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Location{}, apperr.Geocoding("Could not resolve address, please try again.",
			fmt.Errorf("ошибка выполнения HTTP-запроса к геокодеру: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.Location{}, apperr.Geocoding("Could not resolve address, please try again.",
			fmt.Errorf("геокодер вернул статус %d: %s", resp.StatusCode, string(bodyBytes)))
	}

	var geocodeResp GeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geocodeResp); err != nil {
		return domain.Location{}, apperr.Geocoding("Could not resolve address, please try again.",
			fmt.Errorf("ошибка декодирования JSON ответа геокодера: %w", err))
	}

	if geocodeResp.Status == statusZeroResults || len(geocodeResp.Results) == 0 {
		return domain.Location{}, apperr.Geocoding("Could not find location for the specified address.", nil)
	}
	if geocodeResp.Status != statusOK {
		return domain.Location{}, apperr.Geocoding("Could not resolve address, please try again.",
			fmt.Errorf("геокодер вернул статус %q: %s", geocodeResp.Status, geocodeResp.ErrorMessage))
	}

	loc := geocodeResp.Results[0].Geometry.Location
	return domain.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
