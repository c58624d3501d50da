package models

import (
	"encoding/json"
	"time"
)

// Upstream gender values. The data service reports gender in both scripts;
// either one counts toward the stats rollup.
const (
	GenderMaleEnglish   = "Male"
	GenderMaleMarathi   = "पुरुष"
	GenderFemaleEnglish = "Female"
	GenderFemaleMarathi = "स्त्री"
)

// VoterRecord is the canonical in-memory record shape. The record set is
// replaced wholesale on reload and patched by producing a new slice after a
// confirmed remote write; individual records are never mutated in place.
type VoterRecord struct {
	ID            string `json:"id"`
	SerialNumber  string `json:"serialNumber"`
	HouseNumber   string `json:"houseNumber"`
	NameEnglish   string `json:"nameEnglish"`
	NameMarathi   string `json:"nameMarathi"`
	GenderEnglish string `json:"genderEnglish"`
	GenderMarathi string `json:"genderMarathi"`
	Age           string `json:"age"`
	VoterIDCard   string `json:"voterIdCard"`
	MobileNumber  string `json:"mobileNumber"`
}

// Suggestion is one autocomplete entry derived from the record set.
type Suggestion struct {
	NameEnglish string `json:"nameEnglish"`
	NameMarathi string `json:"nameMarathi"`
	VoterIDCard string `json:"voterIdCard"`
	Mobile      string `json:"mobile"`
	Display     string `json:"display"`
}

// EndpointHealth is a copied snapshot of one data endpoint's health state.
type EndpointHealth struct {
	URL                 string    `json:"url"`
	Healthy             bool      `json:"healthy"`
	LastChecked         time.Time `json:"last_checked"`
	ResponseTimeMs      int64     `json:"response_time_ms"`
	ConsecutiveFailures int       `json:"consecutive_failures"`
	SuccessCount        int       `json:"success_count"`
}

// DispatchResult is the outcome of one delivered message.
type DispatchResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	WaID      string `json:"wa_id,omitempty"`
}

// GenderStats are rollup counts over the full record set, not the filtered view.
type GenderStats struct {
	Males   int `json:"males"`
	Females int `json:"females"`
	Total   int `json:"total"`
}

// AutoSendStatus reports a bulk auto-send run to the caller while it is live.
type AutoSendStatus struct {
	Running bool   `json:"running"`
	RunID   string `json:"run_id,omitempty"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`
}

// Request types

type UpdateVoterRequest struct {
	VoterID string  `json:"voter_id"`
	Mobile  *string `json:"mobile,omitempty"`
	Address *string `json:"address,omitempty"`
}

type SendMessageRequest struct {
	VoterID         string `json:"voter_id"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	IncludeLocation bool   `json:"include_location,omitempty"`
}

// Response types

type SearchResponse struct {
	Success    bool          `json:"success"`
	Query      string        `json:"query"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	Data       []VoterRecord `json:"data"`
}

type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type HistoryResponse struct {
	Queries []string `json:"queries"`
}

type ReloadResponse struct {
	Success bool `json:"success"`
	Records int  `json:"records"`
}

type UpdateVoterResponse struct {
	Success bool        `json:"success"`
	Voter   VoterRecord `json:"voter"`
}

type SendMessageResponse struct {
	Success     bool   `json:"success"`
	MessageID   string `json:"message_id,omitempty"`
	WaID        string `json:"wa_id,omitempty"`
	PhoneNumber string `json:"phone_number"`
}

// Gateway proxy wire types (POST /api/whatsapp-send)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
}

type GatewaySendRequest struct {
	PhoneNumber   string    `json:"phone_number"`
	Message       string    `json:"message,omitempty"`
	MessageType   string    `json:"message_type,omitempty"`
	Location      *Location `json:"location,omitempty"`
	PhoneNumberID string    `json:"phone_number_id"`
	APIKey        string    `json:"api_key"`
}

type GatewaySendResponse struct {
	Success     bool            `json:"success"`
	MessageID   string          `json:"message_id,omitempty"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Error       any             `json:"error,omitempty"`
	Message     string          `json:"message,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// Upstream provider wire types (POST <provider>/v3/{phone_number_id}/messages)

type ProviderText struct {
	Body string `json:"body"`
}

type ProviderPayload struct {
	MessagingProduct string        `json:"messaging_product"`
	RecipientType    string        `json:"recipient_type,omitempty"`
	To               string        `json:"to"`
	Type             string        `json:"type"`
	Text             *ProviderText `json:"text,omitempty"`
	Location         *Location     `json:"location,omitempty"`
}

type ProviderMessage struct {
	ID string `json:"id"`
}

type ProviderContact struct {
	WaID string `json:"wa_id"`
}

type ProviderError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

type ProviderResponse struct {
	Messages []ProviderMessage `json:"messages"`
	Contacts []ProviderContact `json:"contacts"`
	Error    *ProviderError    `json:"error"`
}

// Remote field-update wire types (POST <base>/update_mobile.php)

type RemoteUpdatePayload struct {
	VoterID     string  `json:"voter_id"`
	EpicID      string  `json:"epic_id"`
	Mobile      string  `json:"mobile"`
	Address     *string `json:"address"`
	HouseNumber *string `json:"house_number"`
	SerialNo    string  `json:"serial_no"`
}

type RemoteUpdateResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
