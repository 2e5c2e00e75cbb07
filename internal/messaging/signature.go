package messaging

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ValidateSignature checks the webhook signature header against the raw
// request body: base64 of the HMAC-SHA256 of the body keyed by the channel
// secret. Comparison is constant-time.
func ValidateSignature(channelSecret string, signature string, body []byte) bool {
	expected, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return hmac.Equal(expected, mac.Sum(nil))
}

// Sign computes the signature value for a body. Used by tests and by
// tooling that replays webhook deliveries.
func Sign(channelSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(channelSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
