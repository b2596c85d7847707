// Package api is the HTTP client for the bank server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mks/bankboard/internal/transfer"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With().Str("client", "bank-api").Logger(),
	}
}

// Response types. Every endpoint reports a success flag in the body; a
// delivered ok:false is a distinct failure mode from a transport error and
// is handled per widget, never as a hard failure.

// UserState is the server's most recent answer for one identity. Balance is
// kept as the wire literal so the display shows it verbatim; formatting is
// the server's job.
type UserState struct {
	OK         bool        `json:"ok"`
	Balance    json.Number `json:"balance,omitempty"`
	TimeString string      `json:"time_string,omitempty"`
}

type Roster struct {
	OK    bool     `json:"ok"`
	Users []string `json:"users"`
}

type NewsItem struct {
	Headline string `json:"headline"`
}

type News struct {
	OK    bool       `json:"ok"`
	Items []NewsItem `json:"items"`
}

// Quote prices are pointers: a missing or null price renders as the "-"
// sentinel and an absent prev_price yields the neutral change glyph.
type Quote struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	PrevPrice *float64 `json:"prev_price"`
}

type StockList struct {
	OK     bool    `json:"ok"`
	Stocks []Quote `json:"stocks"`
}

type TransferResult struct {
	OK          bool        `json:"ok"`
	FromBalance json.Number `json:"from_balance,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// Internal helpers

func (c *Client) get(path string, params url.Values, target any) error {
	u := c.baseURL + path
	if params != nil {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("path", path).Str("request_id", reqID).Err(err).Msg("GET failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func (c *Client) post(path string, body any, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Str("path", path).Str("request_id", reqID).Err(err).Msg("POST failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

// Endpoints

func (c *Client) User(username string) (UserState, error) {
	var s UserState
	return s, c.get("/user", url.Values{"username": {username}}, &s)
}

func (c *Client) Users() (Roster, error) {
	var r Roster
	return r, c.get("/users", nil, &r)
}

func (c *Client) News(limit int) (News, error) {
	var n News
	return n, c.get("/news", url.Values{"limit": {strconv.Itoa(limit)}}, &n)
}

func (c *Client) Stocks() (StockList, error) {
	var l StockList
	return l, c.get("/stocks", nil, &l)
}

func (c *Client) Transfer(req transfer.Request) (TransferResult, error) {
	var res TransferResult
	return res, c.post("/transfer", req, &res)
}
