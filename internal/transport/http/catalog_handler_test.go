package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"logomarket/internal/domain"
	"logomarket/internal/entitlement"
)

type catalogStub struct {
	items  []domain.CatalogItem
	clicks []string
}

func (s *catalogStub) FetchAll(context.Context) ([]domain.CatalogItem, error) {
	return s.items, nil
}

func (s *catalogStub) FindById(_ context.Context, id uuid.UUID) (*domain.CatalogItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, nil
}

func (s *catalogStub) IncrementClicks(_ context.Context, logoID string) error {
	s.clicks = append(s.clicks, logoID)
	return nil
}

type purchasesStub struct {
	downloads []domain.DownloadEvent
}

func (s *purchasesStub) CreatePurchase(_ context.Context, rec domain.PurchaseRecord) (*domain.PurchaseRecord, error) {
	return &rec, nil
}

func (s *purchasesStub) FindById(context.Context, uuid.UUID) (*domain.PurchaseRecord, error) {
	return nil, nil
}

func (s *purchasesStub) CreateDownload(_ context.Context, ev domain.DownloadEvent) error {
	s.downloads = append(s.downloads, ev)
	return nil
}

func newCatalogRouter(t *testing.T, catalog *catalogStub, purchases *purchasesStub, store *entitlement.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewCatalogHandler(catalog, purchases, store, zap.NewNop())
	r := gin.New()
	r.GET("/catalog", h.List)
	r.POST("/catalog/:id/click", h.Click)
	r.POST("/downloads", h.RecordDownload)
	return r
}

// doRaw posts JSON without decoding the response body (for 204 endpoints).
func doRaw(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, w.Body.Bytes()
}

func TestCatalogListHidesLinksUntilUnlocked(t *testing.T) {
	locked := domain.CatalogItem{ID: uuid.New(), Name: "Locked", Price: 10, Currency: "INR", CreatedAt: time.Now()}
	unlocked := domain.CatalogItem{ID: uuid.New(), Name: "Unlocked", Price: 20, Currency: "INR", CreatedAt: time.Now()}

	store := entitlement.NewStore()
	store.Grant(unlocked.ID.String(), "purchase-1", []domain.DownloadLink{{Format: "png", URL: "https://a/u.png"}})

	r := newCatalogRouter(t, &catalogStub{items: []domain.CatalogItem{locked, unlocked}}, &purchasesStub{}, store)

	w, payload := doJSON(t, r, http.MethodGet, "/catalog", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	logos := payload["logos"].([]any)
	if len(logos) != 2 {
		t.Fatalf("got %d logos", len(logos))
	}
	for _, raw := range logos {
		logo := raw.(map[string]any)
		switch logo["name"] {
		case "Locked":
			if logo["unlocked"] != false || logo["download_links"] != nil {
				t.Fatalf("locked item leaked links: %v", logo)
			}
		case "Unlocked":
			if logo["unlocked"] != true {
				t.Fatalf("unlocked item reported locked: %v", logo)
			}
			if links := logo["download_links"].([]any); len(links) != 1 {
				t.Fatalf("links = %v", links)
			}
		}
	}
}

func TestCatalogClickAlwaysNoContent(t *testing.T) {
	catalog := &catalogStub{}
	r := newCatalogRouter(t, catalog, &purchasesStub{}, entitlement.NewStore())

	req := httptest.NewRequest(http.MethodPost, "/catalog/logo-1/click", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if len(catalog.clicks) != 1 || catalog.clicks[0] != "logo-1" {
		t.Fatalf("clicks = %v", catalog.clicks)
	}
}

func TestRecordDownload(t *testing.T) {
	purchases := &purchasesStub{}
	r := newCatalogRouter(t, &catalogStub{}, purchases, entitlement.NewStore())

	purchaseID := uuid.New()
	w, _ := doRaw(t, r, http.MethodPost, "/downloads", map[string]any{
		"purchase_id": purchaseID.String(),
		"logo_id":     "logo-1",
		"format":      "png",
	})

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if len(purchases.downloads) != 1 || purchases.downloads[0].Format != "png" {
		t.Fatalf("downloads = %+v", purchases.downloads)
	}
}

func TestRecordDownloadBadPurchaseIDIsSilent(t *testing.T) {
	purchases := &purchasesStub{}
	r := newCatalogRouter(t, &catalogStub{}, purchases, entitlement.NewStore())

	w, _ := doRaw(t, r, http.MethodPost, "/downloads", map[string]any{
		"purchase_id": "not-a-uuid",
		"logo_id":     "logo-1",
		"format":      "png",
	})

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if len(purchases.downloads) != 0 {
		t.Fatalf("downloads = %+v", purchases.downloads)
	}
}
