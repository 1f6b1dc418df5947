package openreview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"ReviewHarvest/internal/models"
)

func testConfig(base string) *Config {
	return &Config{
		APIBaseV1:     base,
		APIBaseV2:     base,
		Timeout:       5,
		PageSize:      2,
		MaxPages:      10,
		RatePerSecond: 1000, // 测试里不等真实限速
		CutoverYear:   2024,
	}
}

// pagedServer 返回按页预先切好的 notes，翻到头之后一律空页
func pagedServer(t *testing.T, pages [][]models.Submission) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		page := offset / limit

		notes := []models.Submission{}
		if page < len(pages) {
			notes = pages[page]
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"notes": notes})
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func note(id string) models.Submission {
	return models.Submission{ID: id}
}

func TestSubmissionsPagination(t *testing.T) {
	srv, _ := pagedServer(t, [][]models.Submission{
		{note("a"), note("b")},
		{note("c")},
	})

	client, err := NewClient(testConfig(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	subs, err := client.Submissions(context.Background(), 2024)
	if err != nil {
		t.Fatalf("Submissions() error: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("got %d submissions, want 3", len(subs))
	}
	// 拼接保持页序
	for i, want := range []string{"a", "b", "c"} {
		if subs[i].ID != want {
			t.Errorf("subs[%d].ID = %q, want %q", i, subs[i].ID, want)
		}
	}
}

func TestSubmissionsEmptyFirstPage(t *testing.T) {
	srv, requests := pagedServer(t, nil)

	client, _ := NewClient(testConfig(srv.URL))
	subs, err := client.Submissions(context.Background(), 2024)
	if err != nil {
		t.Fatalf("Submissions() error: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("got %d submissions, want 0", len(subs))
	}
	if *requests != 1 {
		t.Errorf("got %d requests, want 1", *requests)
	}
}

func TestSubmissionsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, _ := NewClient(testConfig(srv.URL))
	_, err := client.Submissions(context.Background(), 2024)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", fetchErr.StatusCode)
	}
}

func TestSubmissionsMaxPagesGuard(t *testing.T) {
	// 永不返回空页的远端：必须在安全上限处报错终止，而不是无限翻页
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"notes": []models.Submission{note("x")},
		})
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxPages = 3
	client, _ := NewClient(cfg)

	_, err := client.Submissions(context.Background(), 2024)
	if err == nil {
		t.Fatal("expected max pages error, got nil")
	}
}

func TestSubmissionsInvitationByCutover(t *testing.T) {
	var invitations []string
	var details []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invitations = append(invitations, r.URL.Query().Get("invitation"))
		details = append(details, r.URL.Query().Get("details"))
		json.NewEncoder(w).Encode(map[string]interface{}{"notes": []models.Submission{}})
	}))
	defer srv.Close()

	client, _ := NewClient(testConfig(srv.URL))

	if _, err := client.Submissions(context.Background(), 2020); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Submissions(context.Background(), 2024); err != nil {
		t.Fatal(err)
	}

	if invitations[0] != "ICLR.cc/2020/Conference/-/Blind_Submission" || details[0] != "replies" {
		t.Errorf("v1 listing params = %q / %q", invitations[0], details[0])
	}
	if invitations[1] != "ICLR.cc/2024/Conference/-/Submission" || details[1] != "directReplies" {
		t.Errorf("v2 listing params = %q / %q", invitations[1], details[1])
	}
}

func TestFilteredSubmissionsVenueParam(t *testing.T) {
	var venue string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		venue = r.URL.Query().Get("content.venue")
		json.NewEncoder(w).Encode(map[string]interface{}{"notes": []models.Submission{}})
	}))
	defer srv.Close()

	client, _ := NewClient(testConfig(srv.URL))
	if _, err := client.FilteredSubmissions(context.Background(), 2024, "oral"); err != nil {
		t.Fatal(err)
	}
	if venue != "ICLR 2024 oral" {
		t.Errorf("content.venue = %q", venue)
	}
}

func TestFilteredSubmissionsUnsupportedCategory(t *testing.T) {
	// 不支持的类别必须在发起任何网络请求之前就失败
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client, _ := NewClient(testConfig(srv.URL))
	_, err := client.FilteredSubmissions(context.Background(), 2024, "bogus")

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if requests != 0 {
		t.Errorf("got %d requests, want 0", requests)
	}
}

func TestNewClientInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageSize = 0
	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func TestCategories(t *testing.T) {
	for _, cat := range Categories() {
		if _, ok := categoryVenues[cat]; !ok {
			t.Errorf("category %q missing venue template", cat)
		}
	}
	if len(Categories()) != len(categoryVenues) {
		t.Errorf("Categories() out of sync with templates")
	}
}

func TestFetchErrorMessage(t *testing.T) {
	err := &FetchError{StatusCode: 500, URL: "http://x/notes"}
	want := fmt.Sprintf("HTTP %d from %s", 500, "http://x/notes")
	if err.Error() != want {
		t.Errorf("Error() = %q", err.Error())
	}
}
