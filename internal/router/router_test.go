package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wtmaxim/ocr-vision/internal/llm"
	"github.com/wtmaxim/ocr-vision/internal/ocr"
)

type stubClient struct{}

func (stubClient) Extract(ctx context.Context, images []llm.ImageData, opts llm.ExtractOptions) (string, error) {
	return "stub", nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := ocr.NewHandler(ocr.NewService(stubClient{}))
	return New(handler)
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestOCRRouteRegistered(t *testing.T) {
	r := newTestRouter()

	// Wrong content type still proves the route exists: 400, not 404.
	req := httptest.NewRequest(http.MethodPost, "/api/ocr", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code == http.StatusNotFound {
		t.Fatal("POST /api/ocr is not registered")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-multipart request, got %d", w.Code)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID on every response")
	}
}
