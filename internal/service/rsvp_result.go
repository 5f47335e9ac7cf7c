package service

import (
	"bytes"
	"encoding/json"
)

type BodyKind int

const (
	BodyJSON BodyKind = iota
	BodyText
)

func (k BodyKind) String() string {
	if k == BodyJSON {
		return "json"
	}
	return "text"
}

// UpstreamBody holds an upstream payload that is either a JSON document or,
// when it does not parse, the raw text.
type UpstreamBody struct {
	kind BodyKind
	json json.RawMessage
	text string
}

func ParseUpstreamBody(raw []byte) UpstreamBody {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return UpstreamBody{kind: BodyJSON, json: json.RawMessage(bytes.Clone(trimmed))}
	}
	return UpstreamBody{kind: BodyText, text: string(raw)}
}

func (b UpstreamBody) Kind() BodyKind { return b.kind }

// Value is what gets serialized back to the client: the JSON document
// verbatim, or the text as a JSON string.
func (b UpstreamBody) Value() any {
	if b.kind == BodyJSON {
		return b.json
	}
	return b.text
}

type UpstreamResult struct {
	StatusCode int
	Body       UpstreamBody
}

func (r *UpstreamResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}
