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

const defaultHoroscopeBaseURL = "https://aztro.sameerkumar.website/"

// signSlugs maps the stored sign names to the identifiers the horoscope
// provider expects.
var signSlugs = map[models.StarSign]string{
	models.SignOvan:     "aries",
	models.SignBik:      "taurus",
	models.SignBlizanci: "gemini",
	models.SignRak:      "cancer",
	models.SignLav:      "leo",
	models.SignDevica:   "virgo",
	models.SignVaga:     "libra",
	models.SignSkorpija: "scorpio",
	models.SignStrelac:  "sagittarius",
	models.SignJarac:    "capricorn",
	models.SignVodolija: "aquarius",
	models.SignRibe:     "pisces",
}

// HoroscopeService fetches the daily horoscope for a sign, best-effort.
// Callers fall back to local copy when the provider is unreachable.
type HoroscopeService struct {
	baseURL string
	client  *http.Client
}

func NewHoroscopeService(baseURL string) *HoroscopeService {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultHoroscopeBaseURL
	}
	return &HoroscopeService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type horoscopeResponse struct {
	Description string `json:"description"`
}

func (service *HoroscopeService) Fetch(ctx context.Context, sign models.StarSign) (string, bool) {
	slug, known := signSlugs[sign]
	if !known {
		return "", false
	}

	text, err := service.fetch(ctx, slug)
	if err != nil {
		log.Printf("horoscope: lookup for %s failed: %v", sign, err)
		return "", false
	}
	return text, true
}

func (service *HoroscopeService) fetch(ctx context.Context, slug string) (string, error) {
	values := url.Values{}
	values.Set("sign", slug)
	values.Set("day", "today")

	endpoint := fmt.Sprintf("%s?%s", service.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
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
		return "", fmt.Errorf("provider status %d: %s", resp.StatusCode, string(body))
	}

	var payload horoscopeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	text := strings.TrimSpace(payload.Description)
	if text == "" {
		return "", fmt.Errorf("empty description")
	}
	return text, nil
}
