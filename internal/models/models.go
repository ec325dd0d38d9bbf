package models

import "encoding/json"

// GenerateRequest carries the pasted text and whether the user pressed Generate
type GenerateRequest struct {
	Text      string `json:"text"`
	Triggered bool   `json:"triggered"`
}

// GenerateResponse is the tagged result of one generate action.
// Figure holds plotly.js JSON and is only set when Kind is "chart".
type GenerateResponse struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Message string          `json:"message,omitempty"`
	Figure  json.RawMessage `json:"figure,omitempty"`
}

// InfoResponse describes the running server
type InfoResponse struct {
	Version       string `json:"version"`
	SamplesLoaded bool   `json:"samples_loaded"`
	SampleCount   int    `json:"sample_count"`
	MaxInputBytes int64  `json:"max_input_bytes"`
}
