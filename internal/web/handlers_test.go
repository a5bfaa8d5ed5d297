package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/mgnrega-tools/entrydesk/internal/config"
	"github.com/mgnrega-tools/entrydesk/internal/core"
	"github.com/mgnrega-tools/entrydesk/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: 60 * time.Second,
		},
		Session: config.SessionConfig{
			Secret:     "test-secret",
			CookieName: "entrydesk_session",
			MaxAge:     3600,
		},
		Rate: config.RateLimitConfig{Enabled: false},
	}
}

func newTestServer(t *testing.T) (*Server, *store.MemStore) {
	t.Helper()
	mem := store.NewMemStore()
	return NewServer(core.NewService(mem), testConfig()), mem
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func validJobcardForm() url.Values {
	return url.Values{
		"block_name":  {"Para"},
		"panchayat":   {"Anara"},
		"job_card_no": {"JC-1001"},
		"reason":      {"duplicate card"},
	}
}

func TestSubmitJobcard_Success(t *testing.T) {
	s, mem := newTestServer(t)

	rec := postForm(t, s, "/deleted-jobcard", validJobcardForm())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/deleted-jobcard" {
		t.Errorf("Location = %q, want /deleted-jobcard", loc)
	}

	records, err := mem.ListJobcardRequests(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("ListJobcardRequests() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d stored records, want 1", len(records))
	}
	if records[0].JobCardNo != "JC-1001" || records[0].Reason != "duplicate card" {
		t.Errorf("stored record = %+v", records[0])
	}
}

func TestSubmitJobcard_MissingField(t *testing.T) {
	s, mem := newTestServer(t)

	form := validJobcardForm()
	form.Set("job_card_no", "")
	rec := postForm(t, s, "/deleted-jobcard", form)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "This field is required.") {
		t.Error("response lacks the field error message")
	}
	// Submitted values survive the re-render for correction.
	if !strings.Contains(body, `value="Para"`) {
		t.Error("response lost the submitted block name")
	}

	records, _ := mem.ListJobcardRequests(context.Background(), core.Filter{})
	if len(records) != 0 {
		t.Errorf("invalid submission was stored: %+v", records)
	}
}

func TestSubmitJobcard_ReasonOptional(t *testing.T) {
	s, _ := newTestServer(t)

	form := validJobcardForm()
	form.Set("reason", "")
	rec := postForm(t, s, "/deleted-jobcard", form)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestFormPrefill_FromSession(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	client := &http.Client{Jar: jar}

	form := url.Values{
		"block_name":   {"Raghunathpur-I"},
		"panchayat":    {"Kashipur"},
		"village":      {"Amtala"},
		"fin_year":     {"2023-2024"},
		"scheme_name":  {"Pond Excavation"},
		"work_code":    {"WC001"},
		"bill_no":      {"B55"},
		"voucher_year": {"2023-2024"},
		"amount":       {"15000"},
	}
	resp, err := client.PostForm(ts.URL+"/delete-voucher", form)
	if err != nil {
		t.Fatalf("PostForm() error = %v", err)
	}
	body := readBody(t, resp)

	// The client followed the redirect; the re-rendered form carries the
	// success flash and the remembered location.
	if !strings.Contains(body, "Voucher Delete Request Saved!") {
		t.Error("response lacks the success flash")
	}
	if !strings.Contains(body, `value="Amtala"`) {
		t.Error("village not pre-filled from session")
	}

	// A different form in the same session pre-fills block and panchayat.
	resp, err = client.Get(ts.URL + "/semi-skilled")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	body = readBody(t, resp)
	if !strings.Contains(body, `value="Raghunathpur-I"`) {
		t.Error("block not pre-filled on the registration form")
	}
	if !strings.Contains(body, `value="Kashipur"`) {
		t.Error("panchayat not pre-filled on the registration form")
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(b)
}

func TestAdmin_Filter(t *testing.T) {
	s, mem := newTestServer(t)
	ctx := context.Background()

	a := core.JobcardRequest{BlockName: "Para", Panchayat: "Anara", JobCardNo: "JC-PARA"}
	b := core.JobcardRequest{BlockName: "Kashipur", Panchayat: "Anara", JobCardNo: "JC-KASHI"}
	if _, err := mem.CreateJobcardRequest(ctx, &a); err != nil {
		t.Fatal(err)
	}
	if _, err := mem.CreateJobcardRequest(ctx, &b); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/admin?block_name=Para")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "JC-PARA") {
		t.Error("filtered listing lacks the matching record")
	}
	if strings.Contains(body, "JC-KASHI") {
		t.Error("filtered listing contains a non-matching record")
	}
}

func TestEdit_MergeSemantics(t *testing.T) {
	s, mem := newTestServer(t)
	ctx := context.Background()

	req := core.JobcardRequest{BlockName: "Para", Panchayat: "Anara", JobCardNo: "JC-1", Reason: "old"}
	id, err := mem.CreateJobcardRequest(ctx, &req)
	if err != nil {
		t.Fatal(err)
	}

	// Only reason is submitted; every other field must keep its prior value.
	rec := postForm(t, s, "/edit/jc/1", url.Values{"reason": {"new reason"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want /admin", loc)
	}

	got, err := mem.GetJobcardRequest(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reason != "new reason" {
		t.Errorf("Reason = %q, want %q", got.Reason, "new reason")
	}
	if got.JobCardNo != "JC-1" || got.BlockName != "Para" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestEdit_NotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/edit/jc/999")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want /admin", loc)
	}
}

func TestDelete_Handler(t *testing.T) {
	s, mem := newTestServer(t)
	ctx := context.Background()

	req := core.JobcardRequest{BlockName: "Para", Panchayat: "Anara", JobCardNo: "JC-1"}
	id, err := mem.CreateJobcardRequest(ctx, &req)
	if err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/delete/jc/1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	if _, err := mem.GetJobcardRequest(ctx, id); err == nil {
		t.Error("record still present after delete")
	}

	// Deleting again still redirects; the failure is flashed, not fatal.
	rec = get(t, s, "/delete/jc/1")
	if rec.Code != http.StatusSeeOther {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestDelete_UnknownCategory(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/delete/bogus/1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want /admin", loc)
	}
}

func TestExport_Jobcard(t *testing.T) {
	s, mem := newTestServer(t)

	req := core.JobcardRequest{BlockName: "Para", Panchayat: "Anara", JobCardNo: "JC-1"}
	if _, err := mem.CreateJobcardRequest(context.Background(), &req); err != nil {
		t.Fatal(err)
	}

	rec := get(t, s, "/export/jc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Deleted_Jobcards.csv") {
		t.Errorf("Content-Disposition = %q, want Deleted_Jobcards.csv", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "Block,PANCHAYAT,JOB CARD NO" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 || lines[1] != "Para,Anara,JC-1" {
		t.Errorf("data rows = %v", lines[1:])
	}
}

func TestExport_UnknownCategory(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/export/everything")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
