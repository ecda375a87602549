package dto

import "encoding/json"

// BackendResponse is the envelope the catalog backend wraps its results in.
// Success is a pointer because some endpoints omit it.
type BackendResponse struct {
	Success     *bool           `json:"success"`
	Message     string          `json:"message,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	InvoiceData json.RawMessage `json:"invoiceData,omitempty"`
}
