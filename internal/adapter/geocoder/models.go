package geocoder

// Статусы ответа Google Geocoding API, которые нас интересуют
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Координаты в ответе геокодера
type geocodeLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geocodeGeometry struct {
	Location geocodeLocation `json:"location"`
}

type geocodeResult struct {
	FormattedAddress string          `json:"formatted_address"`
	Geometry         geocodeGeometry `json:"geometry"`
}

// GeocodeResponse — ответ Google Geocoding API
type GeocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Results      []geocodeResult `json:"results"`
}
