package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherService reads the current conditions for one fixed city and folds
// them into the three coarse categories the daily message knows how to talk
// about. Every failure degrades to "no weather context".
type WeatherService struct {
	apiKey  string
	city    string
	baseURL string
	client  *http.Client
}

func NewWeatherService(apiKey string, city string) *WeatherService {
	return &WeatherService{
		apiKey:  apiKey,
		city:    city,
		baseURL: defaultWeatherBaseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type weatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (service *WeatherService) FetchCategory(ctx context.Context) (models.WeatherKind, bool) {
	if service.apiKey == "" {
		return "", false
	}

	kind, err := service.fetch(ctx)
	if err != nil {
		log.Printf("weather: lookup failed: %v", err)
		return "", false
	}
	return kind, true
}

func (service *WeatherService) fetch(ctx context.Context) (models.WeatherKind, error) {
	values := url.Values{}
	values.Set("q", service.city)
	values.Set("appid", service.apiKey)
	values.Set("units", "metric")
	values.Set("lang", "sr")

	endpoint := fmt.Sprintf("%s?%s", service.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := service.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("openweather status %d: %s", resp.StatusCode, string(body))
	}

	var payload weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return "", fmt.Errorf("empty weather block")
	}

	return ClassifyWeather(payload.Weather[0].Main), nil
}

func ClassifyWeather(condition string) models.WeatherKind {
	main := strings.ToLower(strings.TrimSpace(condition))
	switch {
	case strings.Contains(main, "rain"),
		strings.Contains(main, "drizzle"),
		strings.Contains(main, "thunder"):
		return models.WeatherKisovito
	case strings.Contains(main, "clear"):
		return models.WeatherSuncano
	default:
		return models.WeatherOblacno
	}
}
