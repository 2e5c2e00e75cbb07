package messaging

import (
	"testing"
)

func TestValidateSignature(t *testing.T) {
	secret := "test-channel-secret"
	body := []byte(`{"events":[]}`)

	t.Run("valid signature", func(t *testing.T) {
		sig := Sign(secret, body)
		if !ValidateSignature(secret, sig, body) {
			t.Error("ValidateSignature() = false for a valid signature")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		sig := Sign("other-secret", body)
		if ValidateSignature(secret, sig, body) {
			t.Error("ValidateSignature() = true for a signature from another secret")
		}
	})

	t.Run("tampered body", func(t *testing.T) {
		sig := Sign(secret, body)
		if ValidateSignature(secret, sig, []byte(`{"events":[{}]}`)) {
			t.Error("ValidateSignature() = true for a tampered body")
		}
	})

	t.Run("not base64", func(t *testing.T) {
		if ValidateSignature(secret, "!!!not-base64!!!", body) {
			t.Error("ValidateSignature() = true for a malformed header")
		}
	})

	t.Run("empty signature", func(t *testing.T) {
		if ValidateSignature(secret, "", body) {
			t.Error("ValidateSignature() = true for an empty header")
		}
	})
}

func TestParseWebhookBody(t *testing.T) {
	body := []byte(`{
		"destination": "bot-id",
		"events": [
			{"type": "message", "replyToken": "rt-1", "source": {"type": "user", "userId": "U1"},
			 "message": {"id": "m1", "type": "text", "text": "Q1"}},
			{"type": "follow", "replyToken": "rt-2", "source": {"type": "user", "userId": "U2"}}
		]
	}`)

	parsed, err := ParseWebhookBody(body)
	if err != nil {
		t.Fatalf("ParseWebhookBody() error = %v", err)
	}

	if len(parsed.Events) != 2 {
		t.Fatalf("len(Events) = %d, want 2", len(parsed.Events))
	}

	first := parsed.Events[0]
	if first.Type != EventTypeMessage || first.Message == nil || first.Message.Text != "Q1" {
		t.Errorf("first event parsed incorrectly: %+v", first)
	}
	if first.Source.UserID != "U1" {
		t.Errorf("first event userId = %q, want U1", first.Source.UserID)
	}

	second := parsed.Events[1]
	if second.Type != EventTypeFollow || second.Message != nil {
		t.Errorf("second event parsed incorrectly: %+v", second)
	}
}
