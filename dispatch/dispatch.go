// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nanawalke/voter-search/decode"
	"github.com/nanawalke/voter-search/models"
)

// ErrGatewayUnreachable means every configured gateway answered with an HTML
// page or not at all: a deployment problem, not a bad message.
var ErrGatewayUnreachable = errors.New("no whatsapp gateway reachable")

const (
	requestTimeout       = 30 * time.Second
	defaultLocationDelay = 1 * time.Second
	defaultSendDelay     = 2 * time.Second
	defaultBulkLimit     = 20

	bodyLimit = 1 << 20
)

// Dispatcher sends WhatsApp messages through the configured gateway
// endpoints, trying each in order until one accepts the message or the
// provider rejects it for good.
type Dispatcher struct {
	Endpoints     []string
	PhoneNumberID string
	APIKey        string

	// LocationDelay separates the text message from its follow-up map pin.
	LocationDelay time.Duration
	// SendDelay paces consecutive messages of a bulk run.
	SendDelay time.Duration
	// BulkLimit caps how many messages one bulk run may send.
	BulkLimit int

	client *http.Client
}

func New(endpoints []string, phoneNumberID, apiKey string) *Dispatcher {
	return &Dispatcher{
		Endpoints:     endpoints,
		PhoneNumberID: phoneNumberID,
		APIKey:        apiKey,
		LocationDelay: defaultLocationDelay,
		SendDelay:     defaultSendDelay,
		BulkLimit:     defaultBulkLimit,
		client:        &http.Client{Timeout: requestTimeout},
	}
}

// errKind classifies one gateway attempt.
type errKind int

const (
	kindNone errKind = iota
	kindUnreachable    // HTML page or no answer: this gateway is not deployed
	kindNetwork        // transport failure talking to the gateway
	kindMalformed      // gateway answered with something that is not JSON
	kindUpstreamClient // provider rejected the message itself
	kindUpstreamOther  // provider or gateway errored transiently
)

type attemptState int

const (
	stateTrying attemptState = iota
	stateSucceeded
	stateTerminal
)

type attemptOutcome struct {
	state  attemptState
	kind   errKind
	result models.DispatchResult
	err    error
}

// Send normalizes phone and walks the gateway list until a send succeeds.
// Provider rejections with code 400 or 401 are terminal: the message or the
// credentials are wrong and no other gateway will fare better.
func (d *Dispatcher) Send(ctx context.Context, phone, message string) (models.DispatchResult, error) {
	return d.send(ctx, phone, message, nil)
}

// SendWithLocation sends the text message and, once it is accepted, follows
// up with the office map pin after LocationDelay. A failed follow-up is
// logged but does not fail the send.
func (d *Dispatcher) SendWithLocation(ctx context.Context, phone, message string, loc models.Location) (models.DispatchResult, error) {
	res, err := d.send(ctx, phone, message, nil)
	if err != nil {
		return res, err
	}

	select {
	case <-time.After(d.LocationDelay):
	case <-ctx.Done():
		return res, nil
	}

	if _, err := d.send(ctx, phone, "", &loc); err != nil {
		slog.Warn("location follow-up failed", "phone", phone, "error", err)
	}
	return res, nil
}

func (d *Dispatcher) send(ctx context.Context, phone, message string, loc *models.Location) (models.DispatchResult, error) {
	norm, err := NormalizePhone(phone)
	if err != nil {
		return models.DispatchResult{}, err
	}

	payload := models.GatewaySendRequest{
		PhoneNumber:   norm,
		Message:       message,
		MessageType:   "text",
		PhoneNumberID: d.PhoneNumberID,
		APIKey:        d.APIKey,
	}
	if loc != nil {
		payload.MessageType = "location"
		payload.Location = loc
	}

	var (
		lastErr        error
		allUnreachable = true
	)
	for _, endpoint := range d.Endpoints {
		out := d.attempt(ctx, endpoint, payload)
		switch out.state {
		case stateSucceeded:
			return out.result, nil
		case stateTerminal:
			return models.DispatchResult{}, out.err
		}
		if out.kind != kindUnreachable {
			allUnreachable = false
		}
		slog.Warn("gateway attempt failed", "endpoint", endpoint, "error", out.err)
		lastErr = out.err

		if ctx.Err() != nil {
			return models.DispatchResult{}, ctx.Err()
		}
	}

	if lastErr == nil {
		return models.DispatchResult{}, fmt.Errorf("%w: no gateway endpoints configured", ErrGatewayUnreachable)
	}
	if allUnreachable {
		return models.DispatchResult{}, fmt.Errorf("%w: %v", ErrGatewayUnreachable, lastErr)
	}
	return models.DispatchResult{}, lastErr
}

// attempt posts the payload to one gateway and classifies whatever comes
// back.
func (d *Dispatcher) attempt(ctx context.Context, endpoint string, payload models.GatewaySendRequest) attemptOutcome {
	body, err := json.Marshal(payload)
	if err != nil {
		return attemptOutcome{state: stateTerminal, kind: kindMalformed, err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return attemptOutcome{state: stateTrying, kind: kindUnreachable, err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return attemptOutcome{state: stateTrying, kind: kindNetwork, err: fmt.Errorf("post %s: %w", endpoint, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return attemptOutcome{state: stateTrying, kind: kindNetwork, err: fmt.Errorf("read %s: %w", endpoint, err)}
	}

	switch decode.Sniff(raw) {
	case decode.KindHTMLError:
		// A routing page instead of an API response: wrong deployment.
		return attemptOutcome{state: stateTrying, kind: kindUnreachable,
			err: fmt.Errorf("%s answered with an HTML page (status %d)", endpoint, resp.StatusCode)}
	case decode.KindEmpty, decode.KindInvalidJSON:
		return attemptOutcome{state: stateTrying, kind: kindMalformed,
			err: fmt.Errorf("%s answered with unparseable body (status %d)", endpoint, resp.StatusCode)}
	case decode.KindArray:
		return attemptOutcome{state: stateTrying, kind: kindMalformed,
			err: fmt.Errorf("%s answered with a JSON array (status %d)", endpoint, resp.StatusCode)}
	}

	return classifyObject(endpoint, raw, resp.StatusCode)
}

// gatewayReply accepts both the gateway's own envelope and a raw provider
// response that a thin gateway may pass through unchanged.
type gatewayReply struct {
	Success   *bool                    `json:"success"`
	MessageID string                   `json:"message_id"`
	Message   string                   `json:"message"`
	Error     json.RawMessage          `json:"error"`
	Data      json.RawMessage          `json:"data"`
	Messages  []models.ProviderMessage `json:"messages"`
	Contacts  []models.ProviderContact `json:"contacts"`
}

func classifyObject(endpoint string, raw []byte, status int) attemptOutcome {
	var reply gatewayReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return attemptOutcome{state: stateTrying, kind: kindMalformed,
			err: fmt.Errorf("decode %s reply: %w", endpoint, err)}
	}

	succeeded := (reply.Success != nil && *reply.Success) || len(reply.Messages) > 0
	if succeeded {
		res := models.DispatchResult{Success: true, MessageID: reply.MessageID}
		if res.MessageID == "" && len(reply.Messages) > 0 {
			res.MessageID = reply.Messages[0].ID
		}
		if len(reply.Contacts) > 0 {
			res.WaID = reply.Contacts[0].WaID
		}
		if res.MessageID == "" && len(reply.Data) > 0 {
			var provider models.ProviderResponse
			if json.Unmarshal(reply.Data, &provider) == nil && len(provider.Messages) > 0 {
				res.MessageID = provider.Messages[0].ID
				if len(provider.Contacts) > 0 {
					res.WaID = provider.Contacts[0].WaID
				}
			}
		}
		return attemptOutcome{state: stateSucceeded, result: res}
	}

	code, detail := providerError(reply, status)
	err := fmt.Errorf("%s rejected send (code %d): %s", endpoint, code, detail)
	if code == http.StatusBadRequest || code == http.StatusUnauthorized {
		// The message or credentials are wrong; retrying elsewhere cannot help.
		return attemptOutcome{state: stateTerminal, kind: kindUpstreamClient, err: err}
	}
	return attemptOutcome{state: stateTrying, kind: kindUpstreamOther, err: err}
}

// providerError digs the most specific error code and text out of a failed
// reply, falling back to the HTTP status.
func providerError(reply gatewayReply, status int) (int, string) {
	code := status
	detail := reply.Message

	if len(reply.Error) > 0 {
		var perr models.ProviderError
		if json.Unmarshal(reply.Error, &perr) == nil && (perr.Code != 0 || perr.Message != "") {
			if perr.Code != 0 {
				code = perr.Code
			}
			if perr.Message != "" {
				detail = perr.Message
			}
		} else {
			var s string
			if json.Unmarshal(reply.Error, &s) == nil && s != "" {
				detail = s
			}
		}
	}

	if detail == "" {
		detail = "send failed"
	}
	return code, detail
}
