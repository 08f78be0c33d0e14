package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventPaymentSucceeded is the only event type the store acts on; everything
// else is acknowledged and dropped.
const EventPaymentSucceeded = "payment_intent.succeeded"

// DefaultTolerance bounds how stale a signed webhook timestamp may be.
const DefaultTolerance = 5 * time.Minute

type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// PaymentIntent unmarshals the event payload as a payment intent.
func (e *Event) PaymentIntent() (*PaymentIntent, error) {
	var intent PaymentIntent
	if err := json.Unmarshal(e.Data.Object, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent from event: %w", err)
	}
	return &intent, nil
}

// ConstructEvent verifies the signature header against the raw payload and
// parses the event. The header carries a unix timestamp and an HMAC-SHA256 of
// "<timestamp>.<payload>": "t=1492774577,v1=5257a869e7..."
func ConstructEvent(payload []byte, sigHeader, secret string) (*Event, error) {
	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return nil, err
	}

	if time.Since(time.Unix(timestamp, 0)) > DefaultTolerance {
		return nil, fmt.Errorf("webhook timestamp outside tolerance")
	}

	expected := computeSignature(payload, timestamp, secret)
	valid := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("webhook signature mismatch")
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}
	return &event, nil
}

// SignatureHeader produces a header ConstructEvent accepts. The server only
// verifies; this exists for local tooling and tests.
func SignatureHeader(payload []byte, ts time.Time, secret string) string {
	timestamp := ts.Unix()
	return fmt.Sprintf("t=%d,v1=%s", timestamp, computeSignature(payload, timestamp, secret))
}

func parseSignatureHeader(header string) (int64, []string, error) {
	if header == "" {
		return 0, nil, fmt.Errorf("missing signature header")
	}

	var timestamp int64 = -1
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("invalid signature timestamp: %w", err)
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp < 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("malformed signature header")
	}
	return timestamp, signatures, nil
}

func computeSignature(payload []byte, timestamp int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
