// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"github.com/albumpost/albumpost-sdk/sdk/model"
)

// ImageRow is the flat, per-image view of a report.
type ImageRow struct {
	ID             string             `json:"id"                       yaml:"id"`
	UnitID         string             `json:"unitId"                   yaml:"unitId"`
	Filename       string             `json:"filename"                 yaml:"filename"`
	Description    string             `json:"description,omitempty"    yaml:"description,omitempty"`
	MimeType       string             `json:"mimeType"                 yaml:"mimeType"`
	SourceLocator  string             `json:"sourceLocator"            yaml:"sourceLocator"`
	DownloadState  model.OutcomeState `json:"downloadState"            yaml:"downloadState"`
	DownloadError  string             `json:"downloadError,omitempty"  yaml:"downloadError,omitempty"`
	UploadState    model.OutcomeState `json:"uploadState"              yaml:"uploadState"`
	UploadError    string             `json:"uploadError,omitempty"    yaml:"uploadError,omitempty"`
	DestinationURL string             `json:"destinationUrl,omitempty" yaml:"destinationUrl,omitempty"`
}

// UnitRow is the flat, per-unit view of a report.
type UnitRow struct {
	UnitID string             `json:"unitId"          yaml:"unitId"`
	Title  string             `json:"title"           yaml:"title"`
	URL    string             `json:"url,omitempty"   yaml:"url,omitempty"`
	State  model.OutcomeState `json:"state"           yaml:"state"`
	Error  string             `json:"error,omitempty" yaml:"error,omitempty"`
	Images int                `json:"images"          yaml:"images"`
}

// ImageRows flattens the items of one unit report. Steps that never ran are
// reported as unknown.
func ImageRows(r model.UnitReport) []ImageRow {
	rows := make([]ImageRow, 0, len(r.Items))
	for _, it := range r.Items {
		m := it.MediaReference
		row := ImageRow{
			ID:            m.ID,
			UnitID:        r.UnitID,
			Filename:      m.Filename,
			Description:   m.Description,
			MimeType:      m.MimeType,
			SourceLocator: m.SourceLocator,
			DownloadState: model.StateUnknown,
			UploadState:   model.StateUnknown,
		}
		if it.Download != nil {
			row.DownloadState = it.Download.State
			row.DownloadError = it.Download.Error
		}
		if it.Upload != nil {
			row.UploadState = it.Upload.State
			row.UploadError = it.Upload.Error
			row.DestinationURL = it.DestinationURL()
		}
		rows = append(rows, row)
	}
	return rows
}

func BatchImageRows(batch model.BatchResult) []ImageRow {
	var rows []ImageRow
	for _, r := range batch {
		rows = append(rows, ImageRows(r)...)
	}
	return rows
}

func UnitRows(batch model.BatchResult) []UnitRow {
	rows := make([]UnitRow, 0, len(batch))
	for _, r := range batch {
		rows = append(rows, UnitRow{
			UnitID: r.UnitID,
			Title:  r.Title,
			URL:    r.DestinationReference,
			State:  r.State,
			Error:  r.Error,
			Images: len(r.Items),
		})
	}
	return rows
}
