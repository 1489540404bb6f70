package domain

import "encoding/json"

// Result statuses reported by Pact endpoints.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// TxError carries the failure detail of a command result.
type TxError struct {
	Message string `json:"message"`
}

// TxOutcome is the result block of a command response.
type TxOutcome struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  *TxError        `json:"error,omitempty"`
}

// TxResult is the response of /local and /listen calls.
type TxResult struct {
	ReqKey string    `json:"reqKey"`
	Result TxOutcome `json:"result"`
	Gas    int64     `json:"gas"`
	TxID   *int64    `json:"txId,omitempty"`
}

// Succeeded reports whether the command evaluated successfully.
func (r TxResult) Succeeded() bool {
	return r.Result.Status == StatusSuccess
}

// ErrorMessage returns the failure message, or the empty string.
func (r TxResult) ErrorMessage() string {
	if r.Result.Error == nil {
		return ""
	}
	return r.Result.Error.Message
}

// SendRequest is the body of a /send call.
type SendRequest struct {
	Cmds []Envelope `json:"cmds"`
}

// SendResponse is the body returned by /send.
type SendResponse struct {
	RequestKeys []string `json:"requestKeys"`
}

// ListenRequest is the body of a /listen call.
type ListenRequest struct {
	Listen string `json:"listen"`
}
