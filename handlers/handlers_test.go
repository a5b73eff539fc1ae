package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"workcal/handlers"
	"workcal/llm"
	"workcal/routes"
	"workcal/storage"
	"workcal/store"
	"workcal/types"
)

func newTestServer(t *testing.T) (*handlers.Handler, *httptest.Server) {
	t.Helper()
	local, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	t.Cleanup(func() { local.Close() })

	h := handlers.New(store.New(local, nil, 0), llm.Gemini)
	mux := http.NewServeMux()
	routes.RegisterAllRoutes(mux, h)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return h, srv
}

func doJSON(t *testing.T, method, url, body string, out any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("request build failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding %s %s response: %v", method, url, err)
		}
	}
	return resp
}

func createTask(t *testing.T, srv *httptest.Server, date, title string) types.Task {
	t.Helper()
	var resp types.TaskResponse
	r := doJSON(t, "POST", srv.URL+"/tasks", `{"date":"`+date+`","title":"`+title+`"}`, &resp)
	if r.StatusCode != http.StatusCreated || !resp.Success {
		t.Fatalf("create %q: status %d, resp %+v", title, r.StatusCode, resp)
	}
	return resp.Task
}

func TestCreateTaskEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	task := createTask(t, srv, "2024-06-01", "dentist")
	if task.ID == "" || task.Color == "" {
		t.Errorf("created task missing defaults: %+v", task)
	}

	// Duplicate title on the same day.
	r := doJSON(t, "POST", srv.URL+"/tasks", `{"date":"2024-06-01","title":" DENTIST "}`, nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("duplicate create: status %d, want 400", r.StatusCode)
	}

	// Invalid body.
	r = doJSON(t, "POST", srv.URL+"/tasks", `{not json`, nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("bad JSON: status %d, want 400", r.StatusCode)
	}
}

func TestUpdateTaskEndpoint(t *testing.T) {
	_, srv := newTestServer(t)
	task := createTask(t, srv, "2024-06-01", "draft report")

	task.Title = "final report"
	body, _ := json.Marshal(task)
	var resp types.TaskResponse
	r := doJSON(t, "PATCH", srv.URL+"/tasks/update?id="+task.ID, string(body), &resp)
	if r.StatusCode != http.StatusOK || resp.Task.Title != "final report" {
		t.Errorf("update: status %d, resp %+v", r.StatusCode, resp)
	}

	r = doJSON(t, "PATCH", srv.URL+"/tasks/update?id=not-a-uuid", string(body), nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("malformed id: status %d, want 400", r.StatusCode)
	}

	r = doJSON(t, "PATCH", srv.URL+"/tasks/update?id=6e1bdb7e-8cdb-4f2f-9c1b-111111111111", string(body), nil)
	if r.StatusCode != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", r.StatusCode)
	}
}

func TestToggleAndDeleteEndpoints(t *testing.T) {
	_, srv := newTestServer(t)
	task := createTask(t, srv, "2024-06-01", "water plants")

	var resp types.TaskResponse
	doJSON(t, "POST", srv.URL+"/tasks/toggle?id="+task.ID, "", &resp)
	if !resp.Task.Completed {
		t.Errorf("toggle did not complete the task")
	}

	r := doJSON(t, "POST", srv.URL+"/tasks/toggle?id=unknown", "", nil)
	if r.StatusCode != http.StatusNotFound {
		t.Errorf("toggle unknown: status %d, want 404", r.StatusCode)
	}

	r = doJSON(t, "DELETE", srv.URL+"/tasks/delete?id="+task.ID, "", nil)
	if r.StatusCode != http.StatusOK {
		t.Errorf("delete: status %d", r.StatusCode)
	}

	var list types.GetTasksResponse
	doJSON(t, "GET", srv.URL+"/tasks?date=2024-06-01", "", &list)
	if len(list.Tasks) != 0 {
		t.Errorf("task still listed after delete: %+v", list.Tasks)
	}
}

func TestCopyTasksEndpoint(t *testing.T) {
	_, srv := newTestServer(t)
	task := createTask(t, srv, "2024-01-31", "rent")

	var resp types.CopyTasksResponse
	r := doJSON(t, "POST", srv.URL+"/tasks/copy", `{"task_ids":["`+task.ID+`"],"months":2}`, &resp)
	if r.StatusCode != http.StatusCreated || len(resp.Created) != 2 {
		t.Fatalf("copy: status %d, resp %+v", r.StatusCode, resp)
	}
	if resp.Created[0].Date != "2024-02-29" {
		t.Errorf("first copy on %s, want clamped 2024-02-29", resp.Created[0].Date)
	}

	r = doJSON(t, "POST", srv.URL+"/tasks/copy", `{"task_ids":[],"months":2}`, nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("empty ids: status %d, want 400", r.StatusCode)
	}
}

func TestCalendarEndpoint(t *testing.T) {
	_, srv := newTestServer(t)
	createTask(t, srv, "2024-06-14", "payday")

	var resp types.CalendarResponse
	r := doJSON(t, "GET", srv.URL+"/calendar?month=2024-06", "", &resp)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("calendar: status %d", r.StatusCode)
	}
	if len(resp.Days) != 42 {
		t.Fatalf("grid has %d cells, want 42", len(resp.Days))
	}
	if resp.PrevMonth != "2024-05" || resp.NextMonth != "2024-07" {
		t.Errorf("navigation keys %q / %q", resp.PrevMonth, resp.NextMonth)
	}

	var found bool
	for _, day := range resp.Days {
		if day.DateKey == "2024-06-14" && len(day.Tasks) == 1 {
			found = true
		}
	}
	if !found {
		t.Error("task missing from its grid cell")
	}

	r = doJSON(t, "GET", srv.URL+"/calendar?month=junk", "", nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("bad month: status %d, want 400", r.StatusCode)
	}
}

func TestNotesEndpoints(t *testing.T) {
	_, srv := newTestServer(t)

	var resp types.NoteResponse
	r := doJSON(t, "PUT", srv.URL+"/notes?month=2024-06", `{"content":"sprint goals"}`, &resp)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("put note: status %d", r.StatusCode)
	}

	doJSON(t, "GET", srv.URL+"/notes?month=2024-06", "", &resp)
	if resp.Content != "sprint goals" {
		t.Errorf("note round trip: %q", resp.Content)
	}

	r = doJSON(t, "PUT", srv.URL+"/notes?month=nope", `{"content":"x"}`, nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("bad month key: status %d, want 400", r.StatusCode)
	}
}

func TestExtractEndpoint(t *testing.T) {
	h, srv := newTestServer(t)
	h.Extract = func(ctx context.Context, input string, ref time.Time, model llm.Model) (llm.Extraction, error) {
		return llm.Extraction{Title: "Call dentist", Description: input, Date: "2024-06-21"}, nil
	}

	var resp types.ExtractResponse
	r := doJSON(t, "POST", srv.URL+"/ai/extract", `{"text":"dentist next friday"}`, &resp)
	if r.StatusCode != http.StatusCreated || !resp.Created {
		t.Fatalf("extract: status %d, resp %+v", r.StatusCode, resp)
	}
	if resp.Task.Color == "" {
		t.Error("extracted task got no palette color")
	}

	// Same extraction again collides with the stored task.
	r = doJSON(t, "POST", srv.URL+"/ai/extract", `{"text":"dentist next friday"}`, &resp)
	if r.StatusCode != http.StatusConflict || resp.Created {
		t.Errorf("duplicate extract: status %d, resp %+v", r.StatusCode, resp)
	}

	r = doJSON(t, "POST", srv.URL+"/ai/extract", `{"text":"  "}`, nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("blank text: status %d, want 400", r.StatusCode)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	_, srv := newTestServer(t)
	createTask(t, srv, "2024-06-01", "backed up")

	resp, err := http.Get(srv.URL + "/export")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	defer resp.Body.Close()
	var doc types.ExportPayload
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("export decode: %v", err)
	}
	if len(doc.Tasks) != 1 || doc.Version != 1 {
		t.Errorf("export doc %+v", doc)
	}

	payload, _ := json.Marshal(doc)
	body, _ := json.Marshal(types.ImportRequest{Mode: "local", Payload: string(payload)})

	var imp types.ImportResponse
	r := doJSON(t, "POST", srv.URL+"/import", string(body), &imp)
	if r.StatusCode != http.StatusOK || imp.Imported != 1 {
		t.Errorf("import: status %d, resp %+v", r.StatusCode, imp)
	}

	r = doJSON(t, "POST", srv.URL+"/import", `{"mode":"ftp","payload":"{}"}`, nil)
	if r.StatusCode != http.StatusBadRequest {
		t.Errorf("bad mode: status %d, want 400", r.StatusCode)
	}
}

func TestSessionAndSyncEndpoints(t *testing.T) {
	_, srv := newTestServer(t)

	var sess types.SessionResponse
	doJSON(t, "GET", srv.URL+"/auth/session", "", &sess)
	if sess.SignedIn {
		t.Error("fresh store reports a signed-in session")
	}

	// No remote configured: login fails upstream.
	r := doJSON(t, "POST", srv.URL+"/auth/login", `{"email":"a@b.c","password":"pw"}`, nil)
	if r.StatusCode != http.StatusUnauthorized {
		t.Errorf("login without remote: status %d, want 401", r.StatusCode)
	}

	var status types.SyncStatusResponse
	doJSON(t, "GET", srv.URL+"/sync/status", "", &status)
	if status.SignedIn || status.Syncing || len(status.Pending) != 0 {
		t.Errorf("sync status %+v", status)
	}

	var retry types.RetrySyncResponse
	doJSON(t, "POST", srv.URL+"/sync/retry", "", &retry)
	if retry.Replayed != 0 {
		t.Errorf("retry replayed %d ops with empty journal", retry.Replayed)
	}
}
