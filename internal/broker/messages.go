package broker

import "encoding/json"

// Command discriminates identity RPC requests on the queue.
type Command string

const (
	CommandSignUp   Command = "sign-up"
	CommandSignIn   Command = "sign-in"
	CommandRefresh  Command = "refresh-token"
	CommandValidate Command = "validate-token"
	CommandVerify   Command = "verify-user"
)

// Request is the broker RPC envelope: a command discriminator plus a JSON
// payload matching the HTTP body shape.
type Request struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload"`
}

// Response is the broker RPC reply envelope. On failure Code carries the
// application error code so the gateway can reconstruct the HTTP status.
type Response struct {
	OK    bool            `json:"ok"`
	Code  string          `json:"code,omitempty"`
	Error string          `json:"error,omitempty"`
	Body  json.RawMessage `json:"body,omitempty"`
}

// NewRequest marshals a payload into a Request envelope.
func NewRequest(cmd Command, payload any) (Request, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Request{}, err
	}
	return Request{Command: cmd, Payload: raw}, nil
}

// okResponse wraps a successful body.
func okResponse(body any) Response {
	raw, err := json.Marshal(body)
	if err != nil {
		return Response{OK: false, Code: "INTERNAL_ERROR", Error: "failed to encode reply"}
	}
	return Response{OK: true, Body: raw}
}

// errResponse wraps an application error.
func errResponse(code, message string) Response {
	return Response{OK: false, Code: code, Error: message}
}
