// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package report turns settled pipeline items into unit reports and the flat
// rows and publishable elements derived from them.
package report

import (
	"github.com/albumpost/albumpost-sdk/sdk/model"
)

// PublishResult is the outcome of the optional publish step of a unit.
type PublishResult struct {
	URL string
	Err error
}

// BuildUnitReport assembles the report of a unit whose items have all
// settled. Item failures stay on the items; only a failed publish marks the
// unit as errored.
func BuildUnitReport(unit model.WorkUnit, items []model.ProcessedItem, pub *PublishResult) model.UnitReport {
	r := model.UnitReport{
		UnitID: unit.UnitID,
		Title:  unit.Title,
		State:  model.StateSuccess,
		Items:  items,
	}
	if r.Items == nil {
		r.Items = []model.ProcessedItem{}
	}
	if pub != nil {
		if pub.Err != nil {
			r.State = model.StateError
			r.Error = pub.Err.Error()
		} else {
			r.DestinationReference = pub.URL
		}
	}
	return r
}

// FailedUnitReport is used when the unit task itself could not complete. Every
// transferable item is reported as a failed download so the item count still
// matches the unit's media references.
func FailedUnitReport(unit model.WorkUnit, err error) model.UnitReport {
	msg := "unit processing failed"
	if err != nil {
		msg = err.Error()
	}
	items := make([]model.ProcessedItem, 0, len(unit.MediaReferences))
	for _, m := range unit.MediaReferences {
		if !m.IsTransferable() {
			items = append(items, model.SkippedItem(m))
			continue
		}
		items = append(items, model.ProcessedItem{MediaReference: m, Download: model.DownloadFailed(msg)})
	}
	return model.UnitReport{
		UnitID: unit.UnitID,
		Title:  unit.Title,
		State:  model.StateError,
		Error:  msg,
		Items:  items,
	}
}

// MarkStagingLeftover records a staging directory that survived the unit and
// marks the unit as errored, keeping any earlier error message.
func MarkStagingLeftover(r *model.UnitReport, dir string, err error) {
	r.State = model.StateError
	r.StagingLeftover = dir
	msg := "staging cleanup failed"
	if err != nil {
		msg = err.Error()
	}
	if r.Error != "" {
		msg = r.Error + "; " + msg
	}
	r.Error = msg
}

/* ---- SUMMARY ---- */

// Summary counts units and items per final state.
type Summary struct {
	Units          int `json:"units"          yaml:"units"`
	UnitsFailed    int `json:"unitsFailed"    yaml:"unitsFailed"`
	Items          int `json:"items"          yaml:"items"`
	Skipped        int `json:"skipped"        yaml:"skipped"`
	DownloadFailed int `json:"downloadFailed" yaml:"downloadFailed"`
	UploadFailed   int `json:"uploadFailed"   yaml:"uploadFailed"`
	Uploaded       int `json:"uploaded"       yaml:"uploaded"`
}

func Summarize(batch model.BatchResult) Summary {
	var s Summary
	for _, r := range batch {
		s.Units++
		if !r.State.IsSuccess() {
			s.UnitsFailed++
		}
		for _, it := range r.Items {
			s.Items++
			switch it.State() {
			case model.ItemSkipped:
				s.Skipped++
			case model.ItemDownloadFailed:
				s.DownloadFailed++
			case model.ItemUploadFailed:
				s.UploadFailed++
			case model.ItemUploaded:
				s.Uploaded++
			}
		}
	}
	return s
}

// LogValues returns the summary as slog key/value pairs.
func (s Summary) LogValues() []any {
	return []any{
		"units", s.Units,
		"units_failed", s.UnitsFailed,
		"items", s.Items,
		"uploaded", s.Uploaded,
		"skipped", s.Skipped,
		"download_failed", s.DownloadFailed,
		"upload_failed", s.UploadFailed,
	}
}
