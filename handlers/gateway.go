// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nanawalke/voter-search/cliparse"
	"github.com/nanawalke/voter-search/middleware"
	"github.com/nanawalke/voter-search/models"
)

const (
	gatewayTimeout   = 30 * time.Second
	gatewayBodyLimit = 1 << 20
)

// GatewayHandler is the embedded WhatsApp gateway: it validates a send
// request and forwards it to the upstream messaging provider. Other
// deployments can run the same endpoint standalone, which is why send
// credentials travel in the request body rather than being read from config.
type GatewayHandler struct {
	cfg    cliparse.Config
	client *http.Client
}

func NewGatewayHandler(cfg cliparse.Config) *GatewayHandler {
	return &GatewayHandler{cfg: cfg, client: &http.Client{Timeout: gatewayTimeout}}
}

// WhatsAppSend handles POST /api/whatsapp-send
func (h *GatewayHandler) WhatsAppSend(w http.ResponseWriter, r *http.Request) {
	var req models.GatewaySendRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		gatewayError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.PhoneNumber == "" {
		gatewayError(w, http.StatusBadRequest, "phone_number is required")
		return
	}
	if req.PhoneNumberID == "" {
		gatewayError(w, http.StatusBadRequest, "phone_number_id is required")
		return
	}
	if req.APIKey == "" {
		gatewayError(w, http.StatusBadRequest, "api_key is required")
		return
	}

	payload := models.ProviderPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               req.PhoneNumber,
	}
	switch req.MessageType {
	case "location":
		if req.Location == nil {
			gatewayError(w, http.StatusBadRequest, "location is required for message_type location")
			return
		}
		payload.Type = "location"
		payload.Location = req.Location
	default:
		if req.Message == "" {
			gatewayError(w, http.StatusBadRequest, "message is required")
			return
		}
		payload.Type = "text"
		payload.Text = &models.ProviderText{Body: req.Message}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		gatewayError(w, http.StatusInternalServerError, "failed to encode provider payload")
		return
	}

	url := fmt.Sprintf("%s/v3/%s/messages", h.cfg.ProviderBaseURL, req.PhoneNumberID)
	provReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		gatewayError(w, http.StatusInternalServerError, "failed to build provider request")
		return
	}
	provReq.Header.Set("Content-Type", "application/json")
	provReq.Header.Set("apikey", req.APIKey)

	resp, err := h.client.Do(provReq)
	if err != nil {
		slog.Error("provider request failed", "error", err)
		middleware.JSONResponse(w, http.StatusBadGateway, models.GatewaySendResponse{
			Success: false,
			Error:   "provider unreachable",
			Message: err.Error(),
		})
		return
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, gatewayBodyLimit))
	if err != nil {
		gatewayError(w, http.StatusBadGateway, "failed to read provider response")
		return
	}

	var provider models.ProviderResponse
	if err := json.Unmarshal(raw, &provider); err != nil {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		middleware.JSONResponse(w, status, models.GatewaySendResponse{
			Success: false,
			Error:   "provider returned an unparseable response",
			Message: fmt.Sprintf("status %d", resp.StatusCode),
		})
		return
	}

	if resp.StatusCode >= 400 || provider.Error != nil {
		status := resp.StatusCode
		if status < 400 {
			status = http.StatusBadRequest
		}
		out := models.GatewaySendResponse{Success: false, Data: raw}
		if provider.Error != nil {
			out.Error = provider.Error
			out.Message = provider.Error.Message
		} else {
			out.Error = "provider rejected the message"
		}
		middleware.JSONResponse(w, status, out)
		return
	}

	out := models.GatewaySendResponse{
		Success:     true,
		PhoneNumber: req.PhoneNumber,
		Data:        raw,
	}
	if len(provider.Messages) > 0 {
		out.MessageID = provider.Messages[0].ID
	}
	middleware.JSONResponse(w, http.StatusOK, out)
}

// gatewayError keeps the gateway's error envelope, which predates the rest of
// the API and uses a bare error string.
func gatewayError(w http.ResponseWriter, status int, msg string) {
	middleware.JSONResponse(w, status, models.GatewaySendResponse{Success: false, Error: msg})
}
