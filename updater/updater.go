// Copyright (c) 2025 Nana Walke Foundation.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package updater

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/nanawalke/voter-search/decode"
	"github.com/nanawalke/voter-search/models"
)

var (
	// ErrMissingEpicID means the record has no card number, which the remote
	// store keys updates on.
	ErrMissingEpicID = errors.New("record has no voter card number")
	// ErrInvalidMobile rejects a replacement mobile that is not ten digits.
	// An empty mobile is allowed: it clears the stored number.
	ErrInvalidMobile = errors.New("mobile number must be ten digits")
	// ErrRemoteRejected means the remote store answered but did not confirm
	// the update.
	ErrRemoteRejected = errors.New("remote store rejected the update")
)

var tenDigits = regexp.MustCompile(`^\d{10}$`)

const (
	requestTimeout = 15 * time.Second
	bodyLimit      = 1 << 20
)

// Client pushes field updates to the remote voter store.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func New(url string) *Client {
	return &Client{URL: url, HTTPClient: &http.Client{Timeout: requestTimeout}}
}

// Request is one field update for one voter. Nil pointer fields are sent as
// empty values, matching what the store expects for a cleared field.
type Request struct {
	VoterID      string
	EpicID       string
	Mobile       string
	Address      *string
	HouseNumber  *string
	SerialNumber string
}

// Update validates and pushes one update. The store only confirms with an
// explicit success status; anything else, including a PHP error page, is a
// rejection.
func (c *Client) Update(ctx context.Context, req Request) error {
	if strings.TrimSpace(req.EpicID) == "" {
		return ErrMissingEpicID
	}
	mobile := strings.TrimSpace(req.Mobile)
	if mobile != "" && !tenDigits.MatchString(mobile) {
		return fmt.Errorf("%w: %q", ErrInvalidMobile, req.Mobile)
	}

	empty := ""
	payload := models.RemoteUpdatePayload{
		VoterID:     req.VoterID,
		EpicID:      req.EpicID,
		Mobile:      mobile,
		Address:     req.Address,
		HouseNumber: req.HouseNumber,
		SerialNo:    req.SerialNumber,
	}
	if payload.Address == nil {
		payload.Address = &empty
	}
	if payload.HouseNumber == nil {
		payload.HouseNumber = &empty
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post update: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return fmt.Errorf("read update reply: %w", err)
	}

	switch decode.Sniff(raw) {
	case decode.KindObject:
	case decode.KindHTMLError:
		return fmt.Errorf("%w: store answered with an error page (status %d)", ErrRemoteRejected, resp.StatusCode)
	default:
		return fmt.Errorf("%w: unparseable reply (status %d)", ErrRemoteRejected, resp.StatusCode)
	}

	var result models.RemoteUpdateResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteRejected, err)
	}
	if result.Status != "success" {
		msg := result.Message
		if msg == "" {
			msg = fmt.Sprintf("status %q", result.Status)
		}
		return fmt.Errorf("%w: %s", ErrRemoteRejected, msg)
	}

	slog.Info("remote update confirmed", "voter_id", req.VoterID, "epic_id", req.EpicID)
	return nil
}
