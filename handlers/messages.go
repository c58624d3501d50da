// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nanawalke/voter-search/compose"
	"github.com/nanawalke/voter-search/dispatch"
	"github.com/nanawalke/voter-search/middleware"
	"github.com/nanawalke/voter-search/models"
	"github.com/nanawalke/voter-search/session"
)

type MessageHandler struct {
	sess       *session.Session
	dispatcher *dispatch.Dispatcher
}

func NewMessageHandler(sess *session.Session, d *dispatch.Dispatcher) *MessageHandler {
	return &MessageHandler{sess: sess, dispatcher: d}
}

// Send handles POST /api/messages/send
// The message body is always composed from the record; the request may only
// override the destination number and ask for the office map pin.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
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

	phone := req.PhoneNumber
	if phone == "" {
		phone = record.MobileNumber
	}
	message := compose.Text(record)

	var (
		res models.DispatchResult
		err error
	)
	if req.IncludeLocation {
		res, err = h.dispatcher.SendWithLocation(r.Context(), phone, message, compose.OrgLocation())
	} else {
		res, err = h.dispatcher.Send(r.Context(), phone, message)
	}

	switch {
	case err == nil:
	case errors.Is(err, dispatch.ErrInvalidPhone):
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter has no valid mobile number")
		return
	case errors.Is(err, dispatch.ErrGatewayUnreachable):
		middleware.ErrorResponse(w, http.StatusBadGateway,
			"no WhatsApp gateway is reachable; check the gateway deployment")
		return
	default:
		slog.Error("send failed", "voter_id", req.VoterID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	normalized, _ := dispatch.NormalizePhone(phone)
	middleware.JSONResponse(w, http.StatusOK, models.SendMessageResponse{
		Success:     true,
		MessageID:   res.MessageID,
		WaID:        res.WaID,
		PhoneNumber: normalized,
	})
}

// AutoSendStatus handles GET /api/messages/autosend
func (h *MessageHandler) AutoSendStatus(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.sess.AutoSendStatus())
}
