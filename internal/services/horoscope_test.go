package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

func TestHoroscopeService_Fetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("sign") != "scorpio" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"description":"Dan za hrabre odluke."}`))
	}))
	defer server.Close()

	service := NewHoroscopeService(server.URL)

	text, ok := service.Fetch(context.Background(), models.SignSkorpija)
	if !ok {
		t.Fatal("expected a horoscope")
	}
	if text != "Dan za hrabre odluke." {
		t.Fatalf("unexpected horoscope text %q", text)
	}
}

func TestHoroscopeService_ProviderFailureDegradesToAbsent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	service := NewHoroscopeService(server.URL)
	if _, ok := service.Fetch(context.Background(), models.SignLav); ok {
		t.Fatal("expected absent horoscope on provider failure")
	}
}

func TestHoroscopeService_EverySignHasAProviderSlug(t *testing.T) {
	t.Parallel()

	for _, sign := range models.AllStarSigns() {
		if _, known := signSlugs[sign]; !known {
			t.Fatalf("sign %s has no provider slug", sign)
		}
	}
}
