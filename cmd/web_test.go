package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rubiojr/hookvault/pkg/core"
)

func TestMain(m *testing.M) {
	time.Local = time.UTC
	os.Exit(m.Run())
}

func sampleHooks() []core.Hook {
	var hooks []core.Hook
	add := func(n int, category, subcategory string) {
		for i := 0; i < n; i++ {
			hooks = append(hooks, core.Hook{
				Category:    category,
				Subcategory: subcategory,
				Hook:        fmt.Sprintf("%s %s hook %d", category, subcategory, i),
				GeneratedAt: core.StringPtr("2024-03-05T10:00:00Z"),
			})
		}
	}
	add(15, "personal_info", "family")
	add(10, "personal_info", "career")
	add(20, "fitness", "running")
	return hooks
}

func setupTestWebServer(t *testing.T, gateway core.Gateway) *httptest.Server {
	t.Helper()
	ws := newWebServer(gateway, 1500*time.Millisecond)
	srv := httptest.NewServer(ws.handler())
	t.Cleanup(srv.Close)
	return srv
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func staticGateway(hooks []core.Hook) core.Gateway {
	return core.GatewayFunc(func(context.Context) ([]core.Hook, error) {
		return hooks, nil
	})
}

func TestHomeInitialPage(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(sampleHooks()))

	status, body := getBody(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	for _, want := range []string{"All Hooks", "Personal Info", "Fitness", "Page 1 of 3", "Mar 5, 2024"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if got := strings.Count(body, `class="hook-card"`); got != 20 {
		t.Errorf("expected 20 cards on the first page, got %d", got)
	}
	if strings.Contains(body, "Choose your subcategory") {
		t.Error("subcategory selector should be hidden without a category")
	}
}

func TestHomeCategorySelection(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(sampleHooks()))

	_, body := getBody(t, srv.URL+"/?category=personal_info&page=2")

	if !strings.Contains(body, "Choose your subcategory") {
		t.Error("expected subcategory selector")
	}
	if !strings.Contains(body, "Page 2 of 2") {
		t.Error("expected second of two pages")
	}
	if got := strings.Count(body, `class="hook-card"`); got != 5 {
		t.Errorf("expected 5 cards on the last page, got %d", got)
	}
	if strings.Contains(body, "fitness running hook") {
		t.Error("filtered page must not contain other categories")
	}
}

func TestHomeSubcategoryHidesPagination(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(sampleHooks()))

	_, body := getBody(t, srv.URL+"/?category=personal_info&subcategory=career")

	if got := strings.Count(body, `class="hook-card"`); got != 10 {
		t.Errorf("expected 10 cards, got %d", got)
	}
	if strings.Contains(body, `class="pagination"`) {
		t.Error("pagination should be hidden for a single page")
	}
}

func TestHomeClampsPage(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(sampleHooks()))

	_, body := getBody(t, srv.URL+"/?page=99")
	if !strings.Contains(body, "Page 3 of 3") {
		t.Error("expected out of range page to clamp to the last page")
	}
}

func TestHomeEmptyCollection(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(nil))

	_, body := getBody(t, srv.URL+"/")
	if !strings.Contains(body, "No hooks available.") {
		t.Error("expected empty state text")
	}
	if !strings.Contains(body, "No categories available") {
		t.Error("expected empty category list")
	}
}

func TestHomeFetchFailure(t *testing.T) {
	gateway := core.GatewayFunc(func(context.Context) ([]core.Hook, error) {
		return nil, core.DataUnavailable(errors.New("connection refused"))
	})
	srv := setupTestWebServer(t, gateway)

	status, body := getBody(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("expected the page to render, got %d", status)
	}
	if !strings.Contains(body, "Hooks are unavailable") {
		t.Error("expected unavailable message")
	}
	if strings.Contains(body, "No hooks available.") {
		t.Error("unavailable data must not look like an empty collection")
	}
	if strings.Contains(body, "connection refused") {
		t.Error("internal error details must not leak into the page")
	}
}

func TestHomeEscapesHookText(t *testing.T) {
	hooks := []core.Hook{{Category: "c", Subcategory: "s", Hook: "<script>alert(1)</script>"}}
	srv := setupTestWebServer(t, staticGateway(hooks))

	_, body := getBody(t, srv.URL+"/")
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("hook text must be escaped")
	}
	if !strings.Contains(body, "Unknown") {
		t.Error("expected Unknown date for a hook without generated_at")
	}
}

func TestHomeLocalizedDate(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(sampleHooks()))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept-Language", "en-GB,en;q=0.8")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "5 Mar 2024") {
		t.Error("expected day-first date for en-GB")
	}
}

func TestAPIRouteMounted(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(sampleHooks()))

	status, body := getBody(t, srv.URL+"/api/test")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var hooks []core.Hook
	if err := json.Unmarshal([]byte(body), &hooks); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(hooks) != 45 {
		t.Errorf("expected 45 hooks, got %d", len(hooks))
	}
}

func TestStaticAssets(t *testing.T) {
	srv := setupTestWebServer(t, staticGateway(nil))

	for _, path := range []string{"/static/app.js", "/static/style.css"} {
		status, _ := getBody(t, srv.URL+path)
		if status != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, status)
		}
	}

	status, _ := getBody(t, srv.URL+"/nope")
	if status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown path, got %d", status)
	}
}
