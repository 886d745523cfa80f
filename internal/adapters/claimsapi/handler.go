// Package claimsapi exposes the claim service over HTTP. Routes live under
// /api/v1 and map one REST resource per entity kind, plus nested list
// endpoints and the duplicate-detection trigger.
package claimsapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"claimcore/internal/core"
	"claimcore/pkg/domain"
)

const apiPrefix = "/api/v1/"

// Handler provides HTTP access to the claim service.
type Handler struct {
	Service *core.Service
}

// NewHandler constructs a claims HTTP handler.
func NewHandler(svc *core.Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		writeError(w, http.StatusInternalServerError, "claim service not configured")
		return
	}
	path := strings.TrimSuffix(r.URL.Path, "/")
	if !strings.HasPrefix(path, apiPrefix) {
		http.NotFound(w, r)
		return
	}
	segments := strings.Split(strings.TrimPrefix(path, apiPrefix), "/")
	switch segments[0] {
	case "users":
		h.handleUsers(w, r, segments[1:])
	case "claimants":
		h.handleClaimants(w, r, segments[1:])
	case "claims":
		h.handleClaims(w, r, segments[1:])
	case "rooms":
		h.handleRooms(w, r, segments[1:])
	case "items":
		h.handleItems(w, r, segments[1:])
	case "documentations":
		h.handleDocumentations(w, r, segments[1:])
	case "potential-duplicates":
		h.handleDuplicates(w, r, segments[1:])
	case "collaborators":
		h.handleCollaborators(w, r, segments[1:])
	default:
		http.NotFound(w, r)
	}
}

// --- users ---

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req userRequest
		if !decodeBody(w, r, &req) {
			return
		}
		user, _, err := h.Service.RegisterUser(ctx, req.toUser())
		respond(w, http.StatusCreated, user, err)
	case len(rest) == 2 && rest[0] == "by-username" && r.Method == http.MethodGet:
		user, err := h.Service.GetUserByUsername(ctx, rest[1])
		respond(w, http.StatusOK, user, err)
	case len(rest) == 1:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			user, err := h.Service.GetUser(ctx, id)
			respond(w, http.StatusOK, user, err)
		case http.MethodPatch:
			var req userPatchRequest
			if !decodeBody(w, r, &req) {
				return
			}
			user, _, err := h.Service.UpdateUser(ctx, id, req.toPatch())
			respond(w, http.StatusOK, user, err)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(rest) == 2 && rest[1] == "last-login" && r.Method == http.MethodPost:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		user, _, err := h.Service.TouchUserLastLogin(ctx, id)
		respond(w, http.StatusOK, user, err)
	default:
		http.NotFound(w, r)
	}
}

// --- claimants ---

func (h *Handler) handleClaimants(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req claimantRequest
		if !decodeBody(w, r, &req) {
			return
		}
		claimant, _, err := h.Service.CreateClaimant(ctx, req.toClaimant())
		respond(w, http.StatusCreated, claimant, err)
	case len(rest) == 1:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			claimant, err := h.Service.GetClaimant(ctx, id)
			respond(w, http.StatusOK, claimant, err)
		case http.MethodPatch:
			var req claimantPatchRequest
			if !decodeBody(w, r, &req) {
				return
			}
			claimant, _, err := h.Service.UpdateClaimant(ctx, id, req.toPatch())
			respond(w, http.StatusOK, claimant, err)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(rest) == 2 && rest[1] == "claims" && r.Method == http.MethodGet:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		claims, err := h.Service.ListClaimsByClaimant(ctx, id)
		respond(w, http.StatusOK, listPayload("claims", claims), err)
	default:
		http.NotFound(w, r)
	}
}

// --- claims ---

func (h *Handler) handleClaims(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req claimRequest
		if !decodeBody(w, r, &req) {
			return
		}
		claim, _, err := h.Service.CreateClaim(ctx, req.toClaim())
		respond(w, http.StatusCreated, claim, err)
	case len(rest) == 1:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			claim, err := h.Service.GetClaim(ctx, id)
			respond(w, http.StatusOK, claim, err)
		case http.MethodPatch:
			var req claimPatchRequest
			if !decodeBody(w, r, &req) {
				return
			}
			claim, _, err := h.Service.UpdateClaim(ctx, id, req.toPatch())
			respond(w, http.StatusOK, claim, err)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(rest) == 2 && r.Method == http.MethodGet:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch rest[1] {
		case "summary":
			summary, err := h.Service.GetClaimSummary(ctx, id)
			respond(w, http.StatusOK, summary, err)
		case "rooms":
			rooms, err := h.Service.ListRoomsByClaim(ctx, id)
			respond(w, http.StatusOK, listPayload("rooms", rooms), err)
		case "collaborators":
			cols, err := h.Service.ListCollaboratorsByClaim(ctx, id)
			respond(w, http.StatusOK, listPayload("collaborators", cols), err)
		default:
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

// --- rooms ---

func (h *Handler) handleRooms(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req roomRequest
		if !decodeBody(w, r, &req) {
			return
		}
		room, _, err := h.Service.CreateRoom(ctx, req.toRoom())
		respond(w, http.StatusCreated, room, err)
	case len(rest) == 1:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			room, err := h.Service.GetRoom(ctx, id)
			respond(w, http.StatusOK, room, err)
		case http.MethodPatch:
			var req roomPatchRequest
			if !decodeBody(w, r, &req) {
				return
			}
			room, _, err := h.Service.UpdateRoom(ctx, id, req.toPatch())
			respond(w, http.StatusOK, room, err)
		case http.MethodDelete:
			_, err := h.Service.DeleteRoom(ctx, id)
			respondDeleted(w, err)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(rest) == 2 && rest[1] == "items" && r.Method == http.MethodGet:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		items, err := h.Service.ListItemsByRoom(ctx, id)
		respond(w, http.StatusOK, listPayload("items", items), err)
	default:
		http.NotFound(w, r)
	}
}

// --- items ---

func (h *Handler) handleItems(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req itemRequest
		if !decodeBody(w, r, &req) {
			return
		}
		item, _, err := h.Service.CreateItem(ctx, req.toItem())
		respond(w, http.StatusCreated, item, err)
	case len(rest) == 1:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			item, err := h.Service.GetItem(ctx, id)
			respond(w, http.StatusOK, item, err)
		case http.MethodPatch:
			var req itemPatchRequest
			if !decodeBody(w, r, &req) {
				return
			}
			item, _, err := h.Service.UpdateItem(ctx, id, req.toPatch())
			respond(w, http.StatusOK, item, err)
		case http.MethodDelete:
			_, err := h.Service.DeleteItem(ctx, id)
			respondDeleted(w, err)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(rest) == 2:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch {
		case rest[1] == "documentations" && r.Method == http.MethodGet:
			docs, err := h.Service.ListDocumentationsByItem(ctx, id)
			respond(w, http.StatusOK, listPayload("documentations", docs), err)
		case rest[1] == "documentations" && r.Method == http.MethodPost:
			h.handleAttachFile(w, r, id)
		case rest[1] == "duplicates" && r.Method == http.MethodGet:
			dups, err := h.Service.ListPotentialDuplicatesByItem(ctx, id)
			respond(w, http.StatusOK, listPayload("duplicates", dups), err)
		default:
			http.NotFound(w, r)
		}
	case len(rest) == 3 && rest[1] == "duplicates" && rest[2] == "detect" && r.Method == http.MethodPost:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		dups, _, err := h.Service.DetectPotentialDuplicates(ctx, id)
		respond(w, http.StatusOK, listPayload("duplicates", dups), err)
	default:
		http.NotFound(w, r)
	}
}

// handleAttachFile accepts a multipart evidence upload and creates the
// documentation record in one call. The record fields arrive in a "document"
// form part, the file in a "file" part.
func (h *Handler) handleAttachFile(w http.ResponseWriter, r *http.Request, itemID int64) {
	ctx := r.Context()
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "expected multipart upload: "+err.Error())
		return
	}
	var req documentationRequest
	if meta := r.FormValue("document"); meta != "" {
		if err := json.Unmarshal([]byte(meta), &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid document part: "+err.Error())
			return
		}
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer file.Close()

	doc := req.toDocumentation()
	doc.ItemID = itemID
	created, _, err := h.Service.AttachDocumentationFile(ctx, doc, header.Filename, header.Header.Get("Content-Type"), file)
	respond(w, http.StatusCreated, created, err)
}

// --- documentations ---

func (h *Handler) handleDocumentations(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req documentationRequest
		if !decodeBody(w, r, &req) {
			return
		}
		doc, _, err := h.Service.CreateDocumentation(ctx, req.toDocumentation())
		respond(w, http.StatusCreated, doc, err)
	case len(rest) == 1:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			doc, err := h.Service.GetDocumentation(ctx, id)
			respond(w, http.StatusOK, doc, err)
		case http.MethodPatch:
			var req documentationPatchRequest
			if !decodeBody(w, r, &req) {
				return
			}
			doc, _, err := h.Service.UpdateDocumentation(ctx, id, req.toPatch())
			respond(w, http.StatusOK, doc, err)
		case http.MethodDelete:
			_, err := h.Service.DeleteDocumentation(ctx, id)
			respondDeleted(w, err)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(rest) == 2 && rest[1] == "file" && r.Method == http.MethodGet:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		info, rc, err := h.Service.OpenDocumentationFile(ctx, id)
		if err != nil {
			writeError(w, statusForError(err), err.Error())
			return
		}
		defer rc.Close()
		if info.ContentType != "" {
			w.Header().Set("Content-Type", info.ContentType)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	default:
		http.NotFound(w, r)
	}
}

// --- potential duplicates ---

func (h *Handler) handleDuplicates(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 1 && r.Method == http.MethodGet:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		dup, err := h.Service.GetPotentialDuplicate(ctx, id)
		respond(w, http.StatusOK, dup, err)
	case len(rest) == 2 && rest[1] == "status" && r.Method == http.MethodPost:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		var req struct {
			Status string `json:"status"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		dup, _, err := h.Service.UpdatePotentialDuplicateStatus(ctx, id, domain.DuplicateStatus(req.Status))
		respond(w, http.StatusOK, dup, err)
	default:
		http.NotFound(w, r)
	}
}

// --- collaborators ---

func (h *Handler) handleCollaborators(w http.ResponseWriter, r *http.Request, rest []string) {
	ctx := r.Context()
	switch {
	case len(rest) == 0 && r.Method == http.MethodPost:
		var req collaboratorRequest
		if !decodeBody(w, r, &req) {
			return
		}
		col, _, err := h.Service.CreateCollaborator(ctx, req.toCollaborator())
		respond(w, http.StatusCreated, col, err)
	case len(rest) == 1:
		id, ok := parseID(w, rest[0])
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			col, err := h.Service.GetCollaborator(ctx, id)
			respond(w, http.StatusOK, col, err)
		case http.MethodPatch:
			var req collaboratorPatchRequest
			if !decodeBody(w, r, &req) {
				return
			}
			col, _, err := h.Service.UpdateCollaborator(ctx, id, req.toPatch())
			respond(w, http.StatusOK, col, err)
		case http.MethodDelete:
			_, err := h.Service.DeleteCollaborator(ctx, id)
			respondDeleted(w, err)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	default:
		http.NotFound(w, r)
	}
}

// --- helpers ---

func parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func listPayload[T any](key string, values []T) map[string]any {
	if values == nil {
		values = []T{}
	}
	return map[string]any{key: values}
}

func respond(w http.ResponseWriter, status int, payload any, err error) {
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, status, payload)
}

func respondDeleted(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusForError maps core error kinds onto HTTP statuses: missing records
// are 404, dangling references 422, malformed payloads 400, and blocked
// transactions 409.
func statusForError(err error) int {
	var ruleErr domain.RuleViolationError
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case domain.IsReference(err):
		return http.StatusUnprocessableEntity
	case domain.IsValidation(err):
		return http.StatusBadRequest
	case errors.As(err, &ruleErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
