package kucoin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"time"
)

// signer produces the KC-API authentication headers: an HMAC-SHA256 over
// timestamp + method + path + body, base64 encoded, with the passphrase
// itself signed the same way (key version 2).
type signer struct {
	apiKey     string
	apiSecret  string
	passphrase string
}

func (s signer) headers(method, path, body string) map[string]string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)

	return map[string]string{
		"KC-API-KEY":         s.apiKey,
		"KC-API-SIGN":        s.sign(ts + method + path + body),
		"KC-API-TIMESTAMP":   ts,
		"KC-API-PASSPHRASE":  s.sign(s.passphrase),
		"KC-API-KEY-VERSION": "2",
		"Content-Type":       "application/json",
	}
}

func (s signer) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(s.apiSecret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
