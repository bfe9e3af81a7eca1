package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// InstanceSchema is the top-level JSON structure of an instance file.
type InstanceSchema struct {
	Name            string                 `json:"name"`
	TimelineLength  int                    `json:"timeline_length"`
	Items           []ItemImport           `json:"items"`
	SideConstraints []SideConstraintImport `json:"side_constraints,omitempty"`
}

// ItemImport defines one item and its required run length.
type ItemImport struct {
	ID     string `json:"id"`
	Length int    `json:"length"`
}

// SideConstraintImport is one extra restriction. Kind selects which fields
// apply:
//
//	at_or_after / at_or_before: item, ordinal
//	cells: cells, bound, value
type SideConstraintImport struct {
	Name    string       `json:"name,omitempty"`
	Kind    string       `json:"kind"`
	Item    string       `json:"item,omitempty"`
	Ordinal int          `json:"ordinal,omitempty"`
	Cells   []CellImport `json:"cells,omitempty"`
	Bound   string       `json:"bound,omitempty"`
	Value   *int         `json:"value,omitempty"`
}

// CellImport references one (item, position) cell. Position is the
// position id, "1" through timeline_length.
type CellImport struct {
	Item     string `json:"item"`
	Position string `json:"position"`
}

const (
	KindAtOrAfter  = "at_or_after"
	KindAtOrBefore = "at_or_before"
	KindCells      = "cells"
)

// LoadInstanceSchema reads and parses an instance JSON file.
func LoadInstanceSchema(path string) (*InstanceSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseInstanceSchema(data)
}

// ParseInstanceSchema parses instance JSON. Unknown fields are rejected.
func ParseInstanceSchema(data []byte) (*InstanceSchema, error) {
	var schema InstanceSchema
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing instance file: %w", err)
	}
	return &schema, nil
}

// WriteInstanceSchema writes schema as indented JSON.
func WriteInstanceSchema(w io.Writer, schema *InstanceSchema) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}
