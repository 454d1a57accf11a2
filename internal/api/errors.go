package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnreachable covers every connectivity failure; the backend makes no
// finer distinction worth surfacing to the user.
var ErrUnreachable = errors.New("cannot connect to server")

// Error is a structured non-2xx backend response.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend %d", e.Status)
}

// IsTokenExpired distinguishes an expired session from an invalid one by
// the server-provided code or message text.
func (e *Error) IsTokenExpired() bool {
	if strings.EqualFold(e.Code, "TOKEN_EXPIRED") {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "expired") || strings.Contains(msg, "hết hạn")
}

// errorBody is the shape the backend uses for failures; some endpoints
// put the text under "message", others under "error".
type errorBody struct {
	Message string `json:"message"`
	ErrText string `json:"error"`
	Code    string `json:"code"`
}

func decodeError(resp *http.Response) *Error {
	out := &Error{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		out.Message = http.StatusText(resp.StatusCode)
		return out
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		out.Message = strings.TrimSpace(string(raw))
		return out
	}

	out.Code = body.Code
	out.Message = body.Message
	if out.Message == "" {
		out.Message = body.ErrText
	}
	if out.Message == "" {
		out.Message = http.StatusText(resp.StatusCode)
	}
	return out
}
