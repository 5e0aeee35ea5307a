package models

import (
	"github.com/google/uuid"
)

// SelectionResponse echoes the selection a query was answered for.
type SelectionResponse struct {
	Products   []string `json:"products"`
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	From       string   `json:"from"`
	To         string   `json:"to"`
}

// OptionsResponse lists everything a selection can be built from.
type OptionsResponse struct {
	DatasetID  uuid.UUID         `json:"dataset_id"`
	Products   []string          `json:"products"`
	Categories []string          `json:"categories"`
	Locations  []string          `json:"locations"`
	From       string            `json:"from,omitempty"`
	To         string            `json:"to,omitempty"`
	Records    int               `json:"records"`
	Warnings   []LoadWarning     `json:"warnings"`
	Defaults   SelectionResponse `json:"defaults"`
}

// RecordsResponse contains the filtered view.
type RecordsResponse struct {
	DatasetID uuid.UUID         `json:"dataset_id"`
	Selection SelectionResponse `json:"selection"`
	Count     int               `json:"count"`
	Records   []Record          `json:"records"`
}

// HealthResponse reports liveness and the loaded dataset, if any.
type HealthResponse struct {
	Status    string     `json:"status"`
	Loaded    bool       `json:"loaded"`
	DatasetID *uuid.UUID `json:"dataset_id,omitempty"`
	Records   int        `json:"records"`
}
