// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/nanawalke/voter-search/balancer"
	"github.com/nanawalke/voter-search/loader"
	"github.com/nanawalke/voter-search/middleware"
	"github.com/nanawalke/voter-search/models"
	"github.com/nanawalke/voter-search/search"
	"github.com/nanawalke/voter-search/session"
	"github.com/nanawalke/voter-search/updater"
)

type VoterHandler struct {
	sess    *session.Session
	lb      *balancer.LoadBalancer
	updater *updater.Client
}

func NewVoterHandler(sess *session.Session, lb *balancer.LoadBalancer, up *updater.Client) *VoterHandler {
	return &VoterHandler{sess: sess, lb: lb, updater: up}
}

// Search handles GET /api/voters/search?q=&page=&page_size=
// Committing a query here also arms the auto-send path once results settle.
func (h *VoterHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := intParam(r, "page", 1)
	pageSize := intParam(r, "page_size", search.DefaultPageSize)

	result := h.sess.Search(query, page, pageSize)

	middleware.JSONResponse(w, http.StatusOK, models.SearchResponse{
		Success:    true,
		Query:      strings.TrimSpace(query),
		Page:       result.Number,
		PageSize:   result.Size,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Data:       result.Records,
	})
}

// Suggest handles GET /api/voters/suggest?q=
func (h *VoterHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	suggestions := h.sess.Suggest(r.URL.Query().Get("q"))
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.SuggestResponse{Suggestions: suggestions})
}

// Stats handles GET /api/voters/stats
func (h *VoterHandler) Stats(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.sess.Stats())
}

// History handles GET /api/voters/history
func (h *VoterHandler) History(w http.ResponseWriter, r *http.Request) {
	queries := h.sess.History()
	if queries == nil {
		queries = []string{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.HistoryResponse{Queries: queries})
}

// Reload handles POST /api/voters/reload
func (h *VoterHandler) Reload(w http.ResponseWriter, r *http.Request) {
	count, err := h.sess.Reload(r.Context())
	if err != nil {
		var lerr *loader.Error
		if errors.As(err, &lerr) {
			middleware.ErrorResponse(w, http.StatusBadGateway, lerr.UserMessage())
			return
		}
		slog.Error("reload failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "reload failed")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ReloadResponse{Success: true, Records: count})
}

// Update handles POST /api/voters/update
// The remote store must confirm before the in-memory copy is touched.
func (h *VoterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
		return
	}

	record, ok := h.sess.Find(req.VoterID)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "voter not found")
		return
	}

	mobile := record.MobileNumber
	if req.Mobile != nil {
		mobile = *req.Mobile
	}

	err := h.updater.Update(r.Context(), updater.Request{
		VoterID:      record.ID,
		EpicID:       record.VoterIDCard,
		Mobile:       mobile,
		Address:      req.Address,
		HouseNumber:  &record.HouseNumber,
		SerialNumber: record.SerialNumber,
	})
	switch {
	case err == nil:
	case errors.Is(err, updater.ErrMissingEpicID), errors.Is(err, updater.ErrInvalidMobile):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	default:
		slog.Error("remote update failed", "voter_id", req.VoterID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "remote store did not confirm the update")
		return
	}

	updated, _ := h.sess.PatchRecord(record.ID, &mobile, nil)
	middleware.JSONResponse(w, http.StatusOK, models.UpdateVoterResponse{Success: true, Voter: updated})
}

// EndpointsHealth handles GET /api/endpoints/health
func (h *VoterHandler) EndpointsHealth(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.lb.Snapshot())
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
