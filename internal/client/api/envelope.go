package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// envelope is a decoded response body. Fields are kept raw so the same
// decoder serves every endpoint.
type envelope struct {
	fields map[string]json.RawMessage
	raw    []byte
}

func decodeEnvelope(body []byte) (envelope, error) {
	env := envelope{raw: body}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		env.fields = map[string]json.RawMessage{}
		return env, nil
	}
	if trimmed[0] != '{' {
		// bare arrays and scalars are exposed as "data"
		env.fields = map[string]json.RawMessage{"data": trimmed}
		return env, nil
	}
	if err := json.Unmarshal(trimmed, &env.fields); err != nil {
		return env, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return env, nil
}

func (e envelope) get(key string) (json.RawMessage, bool) {
	v, ok := e.fields[key]
	if !ok || isNull(v) {
		return nil, false
	}
	return v, true
}

// failed reports a falsy success or status field.
func (e envelope) failed() bool {
	for _, key := range []string{"success", "status"} {
		if v, ok := e.get(key); ok && falsy(v) {
			return true
		}
	}
	return false
}

// message returns the message field as text. Non-string messages are
// returned as their JSON text.
func (e envelope) message() string {
	v, ok := e.get("message")
	if !ok {
		return ""
	}
	return rawText(v)
}

// stringMessage is like message but ignores non-string values.
func (e envelope) stringMessage() string {
	v, ok := e.get("message")
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// errorMessage extracts the message of an error body, looking at
// message, then error (string or {message}).
func (e envelope) errorMessage() string {
	if msg := e.message(); msg != "" {
		return msg
	}
	v, ok := e.get("error")
	if !ok {
		return ""
	}
	var nested struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(v, &nested); err == nil && !isNull(nested.Message) && len(nested.Message) > 0 {
		return rawText(nested.Message)
	}
	return rawText(v)
}

func (e envelope) apiError(status int) *APIError {
	return &APIError{Status: status, Message: e.errorMessage(), Raw: e.raw}
}

// objects returns the candidate payload objects in lookup order: data,
// message, then the envelope itself.
func (e envelope) objects() []map[string]json.RawMessage {
	var out []map[string]json.RawMessage
	for _, key := range []string{"data", "message"} {
		if v, ok := e.get(key); ok {
			var m map[string]json.RawMessage
			if json.Unmarshal(v, &m) == nil {
				out = append(out, m)
			}
		}
	}
	return append(out, e.fields)
}

// lookup finds key in the first payload object that has it.
func (e envelope) lookup(key string) (json.RawMessage, bool) {
	for _, obj := range e.objects() {
		if v, ok := obj[key]; ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func isNull(v json.RawMessage) bool {
	s := bytes.TrimSpace(v)
	return len(s) == 0 || string(s) == "null"
}

func isArray(v json.RawMessage) bool {
	s := bytes.TrimSpace(v)
	return len(s) > 0 && s[0] == '['
}

func falsy(v json.RawMessage) bool {
	switch strings.TrimSpace(string(v)) {
	case "false", "0", `"false"`, `"0"`:
		return true
	}
	return false
}

func rawText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(v))
}
