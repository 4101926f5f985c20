package models

import "encoding/json"

// Page represents a paginated collection response.
type Page struct {
	Count    int             `json:"count,omitempty"`
	Next     *string         `json:"next,omitempty"`
	Previous *string         `json:"previous,omitempty"`
	Results  json.RawMessage `json:"results"`
}
