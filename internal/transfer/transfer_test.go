package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{"positive", "10", 10, true},
		{"trimmed", " 25 ", 25, true},
		{"zero", "0", 0, false},
		{"negative", "-5", 0, false},
		{"not a number", "abc", 0, false},
		{"empty", "", 0, false},
		{"fractional", "1.5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		to      string
		amount  string
		wantReq Request
		wantMsg string
	}{
		{
			name:    "valid",
			to:      "leo",
			amount:  "10",
			wantReq: Request{From: "daniel", To: "leo", Amount: 10},
		},
		{
			name:    "no recipient",
			to:      "",
			amount:  "10",
			wantMsg: MsgPickRecipient,
		},
		{
			name:    "bad amount",
			to:      "leo",
			amount:  "abc",
			wantMsg: MsgBadAmount,
		},
		{
			name:    "recipient checked before amount",
			to:      "",
			amount:  "abc",
			wantMsg: MsgPickRecipient,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, msg := Build("daniel", tt.to, tt.amount)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantReq, req)
		})
	}
}
