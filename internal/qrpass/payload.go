package qrpass

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors to help callers distinguish decode failure reasons.
var (
	ErrMalformedPayload = errors.New("qrpass: malformed payload")
	ErrMissingField     = errors.New("qrpass: missing required field")
	ErrInvalidKeyword   = errors.New("qrpass: invalid keyword")
)

// Payload is the identity structure embedded in every QR image. The keyword
// is a shared secret literal checked by equality on decode.
type Payload struct {
	ID      string `json:"id"`
	Session string `json:"session"`
	Email   string `json:"email"`
	Keyword string `json:"keyword"`
}

// Codec encodes and decodes pass payloads against a fixed keyword.
type Codec struct {
	keyword string
}

func NewCodec(keyword string) *Codec {
	return &Codec{keyword: keyword}
}

// Encode serializes the identity fields into the text embedded in the QR
// image.
func (c *Codec) Encode(id, session, email string) (string, error) {
	p := Payload{
		ID:      id,
		Session: session,
		Email:   email,
		Keyword: c.keyword,
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("qrpass: encode payload: %w", err)
	}
	return string(data), nil
}

// Decode parses raw scanned text back into a Payload. It fails with
// ErrMalformedPayload on invalid JSON, ErrMissingField if any of the four
// required fields is absent, and ErrInvalidKeyword if the keyword
// does not match the configured value. A Payload is only returned on full
// success, never partially populated.
func (c *Codec) Decode(raw string) (*Payload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, ErrMalformedPayload
	}

	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, ErrMalformedPayload
	}

	for _, field := range []string{"id", "session", "email", "keyword"} {
		if _, ok := fields[field]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	if p.Keyword != c.keyword {
		return nil, ErrInvalidKeyword
	}

	return &p, nil
}
