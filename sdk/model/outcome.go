// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

// OutcomeState is the state of a download, an upload or a whole unit.
type OutcomeState string

const (
	StateSuccess OutcomeState = "success"
	StateError   OutcomeState = "error"
	// StateUnknown is only used in reports, for outcomes that never happened.
	StateUnknown OutcomeState = "unknown"
)

func (s OutcomeState) String() string {
	return string(s)
}

func (s OutcomeState) IsSuccess() bool {
	return s == StateSuccess
}

// FailedStage tells which step of an upload failed.
type FailedStage string

const (
	StageReadLocalFile FailedStage = "readLocalFile"
	StageTransmit      FailedStage = "transmit"
	StageParseResponse FailedStage = "parseResponse"
)

// DownloadSuccess is what the uploader needs from a finished download.
type DownloadSuccess struct {
	LocalPath          string
	NormalizedFilename string
}

// DownloadOutcome is either a success (LocalPath, NormalizedFilename) or a
// failure (Error). Build it with DownloadSucceeded or DownloadFailed.
type DownloadOutcome struct {
	State              OutcomeState `json:"state"                        yaml:"state"`
	LocalPath          string       `json:"localPath,omitempty"          yaml:"localPath,omitempty"`
	NormalizedFilename string       `json:"normalizedFilename,omitempty" yaml:"normalizedFilename,omitempty"`
	Error              string       `json:"error,omitempty"              yaml:"error,omitempty"`
}

func DownloadSucceeded(localPath, normalizedFilename string) *DownloadOutcome {
	return &DownloadOutcome{
		State:              StateSuccess,
		LocalPath:          localPath,
		NormalizedFilename: normalizedFilename,
	}
}

func DownloadFailed(message string) *DownloadOutcome {
	return &DownloadOutcome{State: StateError, Error: message}
}

// Succeeded returns the success payload when the download worked.
func (o *DownloadOutcome) Succeeded() (DownloadSuccess, bool) {
	if o == nil || o.State != StateSuccess {
		return DownloadSuccess{}, false
	}
	return DownloadSuccess{LocalPath: o.LocalPath, NormalizedFilename: o.NormalizedFilename}, true
}

// UploadOutcome is either a success (DestinationURL) or a failure (Error,
// FailedStage).
type UploadOutcome struct {
	State          OutcomeState `json:"state"                    yaml:"state"`
	DestinationURL string       `json:"destinationURL,omitempty" yaml:"destinationURL,omitempty"`
	Error          string       `json:"error,omitempty"          yaml:"error,omitempty"`
	FailedStage    FailedStage  `json:"failedStage,omitempty"    yaml:"failedStage,omitempty"`
}

func UploadSucceeded(destinationURL string) *UploadOutcome {
	return &UploadOutcome{State: StateSuccess, DestinationURL: destinationURL}
}

func UploadFailed(stage FailedStage, message string) *UploadOutcome {
	return &UploadOutcome{State: StateError, Error: message, FailedStage: stage}
}

// ProcessedItem is the settled result of one media reference. Nil outcomes
// mean the step was skipped, which is not a failure.
type ProcessedItem struct {
	MediaReference MediaReference   `json:"mediaReference"            yaml:"mediaReference"`
	Download       *DownloadOutcome `json:"downloadOutcome,omitempty" yaml:"downloadOutcome,omitempty"`
	Upload         *UploadOutcome   `json:"uploadOutcome,omitempty"   yaml:"uploadOutcome,omitempty"`
}

// SkippedItem is the result for a media reference that is not transferable.
func SkippedItem(media MediaReference) ProcessedItem {
	return ProcessedItem{MediaReference: media}
}

// State derives the final pipeline state of the item from its outcomes.
func (p ProcessedItem) State() ItemState {
	switch {
	case p.Download == nil:
		return ItemSkipped
	case p.Download.State != StateSuccess:
		return ItemDownloadFailed
	case p.Upload == nil:
		return ItemDownloaded
	case p.Upload.State != StateSuccess:
		return ItemUploadFailed
	default:
		return ItemUploaded
	}
}

// DestinationURL returns the uploaded URL, or "" when the item has none.
func (p ProcessedItem) DestinationURL() string {
	if p.Upload == nil || p.Upload.State != StateSuccess {
		return ""
	}
	return p.Upload.DestinationURL
}
