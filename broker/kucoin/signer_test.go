package kucoin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignKnownPayload(t *testing.T) {
	s := signer{apiKey: "key", apiSecret: "secret", passphrase: "my-passphrase"}

	// Reference values produced with an independent HMAC-SHA256 implementation.
	assert.Equal(t,
		"OaOxXgwzqw5iSYde3jq6l/w9f46EuMKiFZYJxMpCZ20=",
		s.sign("1700000000000GET/api/v1/ticker?symbol=XBTUSDTM"))
	assert.Equal(t,
		"O6EXY5PUKd+kAkiyvJZwGMP6HpyiCa3/t3FyTjSmvF8=",
		s.sign("my-passphrase"))
}

func TestHeadersShape(t *testing.T) {
	s := signer{apiKey: "key", apiSecret: "secret", passphrase: "pass"}
	h := s.headers("GET", "/api/v1/ticker", "")

	assert.Equal(t, "key", h["KC-API-KEY"])
	assert.Equal(t, "2", h["KC-API-KEY-VERSION"])
	assert.Equal(t, s.sign("pass"), h["KC-API-PASSPHRASE"])
	assert.NotEmpty(t, h["KC-API-SIGN"])
	assert.NotEmpty(t, h["KC-API-TIMESTAMP"])
}
