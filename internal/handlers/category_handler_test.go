package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCategoryHandler_ListCategories(t *testing.T) {
	r := gin.New()
	r.GET("/api/categories", NewCategoryHandler().ListCategories)

	rec := doRequest(r, "GET", "/api/categories", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := parseJSONArray(t, rec)
	if len(items) != 11 {
		t.Fatalf("expected 11 categories, got %d", len(items))
	}
	if items[0] != "Food" || items[10] != "Other" {
		t.Errorf("unexpected order: %v", items)
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	t.Run("returns 200 when storage is reachable", func(t *testing.T) {
		r := gin.New()
		r.GET("/api/health", NewHealthHandler(pingFunc(func(context.Context) error { return nil }), "memory").Health)

		rec := doRequest(r, "GET", "/api/health", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		if result["status"] != "ok" || result["storage"] != "memory" {
			t.Errorf("unexpected body: %v", result)
		}
	})

	t.Run("returns 503 when storage is down", func(t *testing.T) {
		r := gin.New()
		r.GET("/api/health", NewHealthHandler(pingFunc(func(context.Context) error { return errors.New("down") }), "mongo").Health)

		rec := doRequest(r, "GET", "/api/health", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		if parseJSON(t, rec)["status"] != "degraded" {
			t.Error("expected degraded status")
		}
	})
}
