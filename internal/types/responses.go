// Package types holds the JSON documents returned by the HTTP API
package types

// PaginationResponse represents pagination information for list endpoints
// Example: {"total":42,"limit":100,"offset":0}
type PaginationResponse struct {
	// Number of matching items across all pages
	Total int `json:"total"`

	// Maximum number of items per page
	Limit int `json:"limit"`

	// Number of items skipped from the beginning of the result set
	Offset int `json:"offset"`
}

// ListResponse defines a generic response structure for listing resources
// Example: {"rows":[{"id":1,"title":"example"}],"pagination":{"total":1,"limit":100,"offset":0}}
type ListResponse[T any] struct {
	// Array of resource items
	Rows []T `json:"rows"`

	// Pagination information for the result set
	Pagination PaginationResponse `json:"pagination"`
}

// ErrorResponse represents an error response
// Example: {"error":"Invalid parameters","details":{"title":"this field is required"}}
type ErrorResponse struct {
	// Error message describing what went wrong
	Error string `json:"error"`

	// Optional field-specific validation errors keyed by field name
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse represents a success response
// Example: {"data":{"status":"healthy"}}
type SuccessResponse struct {
	// Optional data returned by the operation
	Data interface{} `json:"data,omitempty"`
}
