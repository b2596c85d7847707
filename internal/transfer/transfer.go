// Package transfer holds the send-money request shape and the client-side
// validation that runs before any request is issued.
package transfer

import (
	"strconv"
	"strings"
)

// Status messages shown in the send panel. The web dashboard uses the same
// strings, so the two front ends stay word-for-word consistent.
const (
	MsgPickRecipient = "Pick a recipient."
	MsgBadAmount     = "Enter a positive amount."
	MsgSuccess       = "Transaction success."
	MsgFailed        = "Transaction failed."
)

// Request is the mutating transfer body. One is built fresh per submission
// and never stored.
type Request struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int    `json:"amount"`
}

// ParseAmount parses raw as a base-10 integer and requires it to be
// strictly positive. No upper bound is enforced client-side; the server
// owns the sufficient-funds check.
func ParseAmount(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Build validates the panel inputs and constructs the request. The returned
// message is empty when validation passes; otherwise it is the status line
// to display, and no request may be issued. The recipient check runs first.
func Build(from, to, rawAmount string) (Request, string) {
	if to == "" {
		return Request{}, MsgPickRecipient
	}
	amount, ok := ParseAmount(rawAmount)
	if !ok {
		return Request{}, MsgBadAmount
	}
	return Request{From: from, To: to, Amount: amount}, ""
}
