package claimsapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"claimcore/internal/blob"
	"claimcore/internal/core"
	"claimcore/internal/infra/persistence/memory"
	"claimcore/pkg/domain"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	store := memory.NewStore(core.NewDefaultRulesEngine())
	svc := core.NewService(store, core.WithBlobStore(blob.NewMemory()))
	return NewHandler(svc)
}

func doJSON(t *testing.T, h *Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func seedClaimOverHTTP(t *testing.T, h *Handler) (claimant, claim, room, item map[string]any) {
	t.Helper()
	steps := []struct {
		path string
		body map[string]any
		out  *map[string]any
	}{
		{"/api/v1/claimants", map[string]any{"full_name": "Rae Cole", "email": "rae@example.com"}, &claimant},
		{"/api/v1/claims", nil, &claim},
		{"/api/v1/rooms", nil, &room},
		{"/api/v1/items", nil, &item},
	}
	for i, step := range steps {
		switch i {
		case 1:
			step.body = map[string]any{"claimant_id": claimant["id"]}
		case 2:
			step.body = map[string]any{"claim_id": claim["id"], "name": "Living Room"}
		case 3:
			step.body = map[string]any{"room_id": room["id"], "name": "Leather Sofa", "cost": 1200, "quantity": 1}
		}
		rec := doJSON(t, h, http.MethodPost, step.path, step.body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("POST %s: status %d body %s", step.path, rec.Code, rec.Body.String())
		}
		decodeInto(t, rec, step.out)
	}
	return claimant, claim, room, item
}

func TestCreateAndFetchClaimGraph(t *testing.T) {
	h := newTestHandler(t)
	_, claim, room, item := seedClaimOverHTTP(t, h)

	rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/claims/%v", claim["id"]), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get claim: status %d", rec.Code)
	}
	var got map[string]any
	decodeInto(t, rec, &got)
	if got["status"] != "draft" {
		t.Fatalf("expected draft claim, got %v", got["status"])
	}

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%v/items", room["id"]), nil)
	var items map[string][]map[string]any
	decodeInto(t, rec, &items)
	if len(items["items"]) != 1 {
		t.Fatalf("expected 1 item, got %v", items)
	}
	if items["items"][0]["id"] != item["id"] {
		t.Fatalf("unexpected item listing %v", items)
	}
}

func TestClaimSummaryEndpoint(t *testing.T) {
	h := newTestHandler(t)
	_, claim, _, _ := seedClaimOverHTTP(t, h)

	rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/claims/%v/summary", claim["id"]), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status %d body %s", rec.Code, rec.Body.String())
	}
	var summary struct {
		DerivedTotal float64 `json:"derived_total"`
		Rooms        []struct {
			Items []map[string]any `json:"items"`
		} `json:"rooms"`
	}
	decodeInto(t, rec, &summary)
	if summary.DerivedTotal != 1200 {
		t.Fatalf("expected derived total 1200, got %v", summary.DerivedTotal)
	}
	if len(summary.Rooms) != 1 || len(summary.Rooms[0].Items) != 1 {
		t.Fatalf("unexpected summary shape %+v", summary)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	h := newTestHandler(t)

	// Unknown claim id.
	if rec := doJSON(t, h, http.MethodGet, "/api/v1/claims/999", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing claim, got %d", rec.Code)
	}
	// Dangling claimant reference.
	if rec := doJSON(t, h, http.MethodPost, "/api/v1/claims", map[string]any{"claimant_id": 999}); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for dangling reference, got %d", rec.Code)
	}
	// Validation failure.
	if rec := doJSON(t, h, http.MethodPost, "/api/v1/claimants", map[string]any{"email": "x@example.com"}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing full_name, got %d", rec.Code)
	}
	// Malformed id segment.
	if rec := doJSON(t, h, http.MethodGet, "/api/v1/claims/abc", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
	// Unknown route.
	if rec := doJSON(t, h, http.MethodGet, "/api/v1/widgets", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown resource, got %d", rec.Code)
	}
	// Wrong method on a known resource.
	if rec := doJSON(t, h, http.MethodDelete, "/api/v1/claims/1", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.NotFoundError{Entity: domain.EntityClaim, ID: 1}, http.StatusNotFound},
		{domain.ReferenceError{Entity: domain.EntityRoom, Field: "claim_id", Parent: domain.EntityClaim, ID: 1}, http.StatusUnprocessableEntity},
		{domain.ValidationError{Entity: domain.EntityItem, Field: "quantity", Message: "bad"}, http.StatusBadRequest},
		{domain.RuleViolationError{}, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusForError(tc.err); got != tc.want {
			t.Errorf("statusForError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestDuplicateDetectionEndpoints(t *testing.T) {
	h := newTestHandler(t)
	_, _, room, item := seedClaimOverHTTP(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/items", map[string]any{"room_id": room["id"], "name": "Sofa Leather"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create twin: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/items/%v/duplicates/detect", item["id"]), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detect: status %d body %s", rec.Code, rec.Body.String())
	}
	var detected map[string][]map[string]any
	decodeInto(t, rec, &detected)
	if len(detected["duplicates"]) != 1 {
		t.Fatalf("expected 1 detected pair, got %v", detected)
	}
	dupID := detected["duplicates"][0]["id"]

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/potential-duplicates/%v/status", dupID), map[string]any{"status": "confirmed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: status %d body %s", rec.Code, rec.Body.String())
	}
	var dup map[string]any
	decodeInto(t, rec, &dup)
	if dup["status"] != "confirmed" {
		t.Fatalf("expected confirmed, got %v", dup["status"])
	}

	// Re-resolving is rejected by the core and surfaces as 400.
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/api/v1/potential-duplicates/%v/status", dupID), map[string]any{"status": "rejected"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 re-resolving pair, got %d", rec.Code)
	}
}

func TestMultipartDocumentationUpload(t *testing.T) {
	h := newTestHandler(t)
	_, _, _, item := seedClaimOverHTTP(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/users", map[string]any{"username": "uploader", "password": "pw"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: status %d", rec.Code)
	}
	var user map[string]any
	decodeInto(t, rec, &user)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	meta := fmt.Sprintf(`{"user_id": %v, "document_type": "receipt", "source_type": "manual_upload", "title": "Sofa receipt"}`, user["id"])
	if err := mw.WriteField("document", meta); err != nil {
		t.Fatalf("write field: %v", err)
	}
	fw, err := mw.CreateFormFile("file", "receipt.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(fw, strings.NewReader("receipt body")); err != nil {
		t.Fatalf("copy file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/items/%v/documentations", item["id"]), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	upload := httptest.NewRecorder()
	h.ServeHTTP(upload, req)
	if upload.Code != http.StatusCreated {
		t.Fatalf("upload: status %d body %s", upload.Code, upload.Body.String())
	}
	var doc map[string]any
	decodeInto(t, upload, &doc)
	fileURL, _ := doc["file_url"].(string)
	if !strings.HasSuffix(fileURL, "/docs/receipt.pdf") {
		t.Fatalf("unexpected file url %q", fileURL)
	}

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/documentations/%v/file", doc["id"]), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("download: status %d body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "receipt body" {
		t.Fatalf("unexpected file body %q", rec.Body.String())
	}
}

func TestDeleteRoomReturnsNoContent(t *testing.T) {
	h := newTestHandler(t)
	_, _, room, item := seedClaimOverHTTP(t, h)

	rec := doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/v1/rooms/%v", room["id"]), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete room: status %d", rec.Code)
	}
	// No cascade: the item stays reachable.
	if rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/items/%v", item["id"]), nil); rec.Code != http.StatusOK {
		t.Fatalf("expected item to survive room delete, got %d", rec.Code)
	}
}

func TestCollaboratorEndpoints(t *testing.T) {
	h := newTestHandler(t)
	_, claim, _, _ := seedClaimOverHTTP(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/users", map[string]any{"username": "invitee", "password": "pw"})
	var user map[string]any
	decodeInto(t, rec, &user)

	rec = doJSON(t, h, http.MethodPost, "/api/v1/collaborators", map[string]any{
		"claim_id": claim["id"], "user_id": user["id"], "email": "invitee@example.com",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create collaborator: status %d body %s", rec.Code, rec.Body.String())
	}
	var col map[string]any
	decodeInto(t, rec, &col)
	if col["role"] != "viewer" || col["invite_status"] != "pending" {
		t.Fatalf("expected defaults, got %v", col)
	}

	rec = doJSON(t, h, http.MethodPatch, fmt.Sprintf("/api/v1/collaborators/%v", col["id"]), map[string]any{"invite_status": "accepted"})
	if rec.Code != http.StatusOK {
		t.Fatalf("accept invite: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/v1/claims/%v/collaborators", claim["id"]), nil)
	var listed map[string][]map[string]any
	decodeInto(t, rec, &listed)
	if len(listed["collaborators"]) != 1 || listed["collaborators"][0]["invite_status"] != "accepted" {
		t.Fatalf("unexpected collaborator listing %v", listed)
	}
}

func TestUserByUsernameEndpoint(t *testing.T) {
	h := newTestHandler(t)
	rec := doJSON(t, h, http.MethodPost, "/api/v1/users", map[string]any{"username": "finder", "password": "pw"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: status %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/users/by-username/finder", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup: status %d", rec.Code)
	}
	var user map[string]any
	decodeInto(t, rec, &user)
	if user["username"] != "finder" {
		t.Fatalf("unexpected user %v", user)
	}
}
