// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

import "strings"

// WorkUnit is one album to transfer (and eventually publish). It is not
// modified once handed to the pipeline.
type WorkUnit struct {
	UnitID          string           `json:"unitId"          yaml:"unitId"`
	Title           string           `json:"title"           yaml:"title"`
	MediaReferences []MediaReference `json:"mediaReferences" yaml:"mediaReferences"`
}

// MediaReference is one remote media item of a unit.
type MediaReference struct {
	ID            string `json:"id"                    yaml:"id"`
	SourceLocator string `json:"sourceLocator"         yaml:"sourceLocator"`
	Filename      string `json:"filename"              yaml:"filename"`
	MimeType      string `json:"mimeType"              yaml:"mimeType"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsTransferable reports whether the item is a JPEG image, the only type the
// destination stores and posts accept. Everything else is skipped.
func (m MediaReference) IsTransferable() bool {
	return strings.EqualFold(strings.TrimSpace(m.MimeType), "image/jpeg")
}

// UnitReport is emitted once every item of a unit has settled. StagingLeftover
// names the unit's staging directory when it could not be removed.
type UnitReport struct {
	UnitID               string          `json:"unitId"                         yaml:"unitId"`
	Title                string          `json:"title"                          yaml:"title"`
	State                OutcomeState    `json:"state"                          yaml:"state"`
	Error                string          `json:"error,omitempty"                yaml:"error,omitempty"`
	DestinationReference string          `json:"destinationReference,omitempty" yaml:"destinationReference,omitempty"`
	StagingLeftover      string          `json:"stagingLeftover,omitempty"      yaml:"stagingLeftover,omitempty"`
	Items                []ProcessedItem `json:"items"                          yaml:"items"`
}

// BatchResult has one report per input unit, in input order.
type BatchResult []UnitReport
