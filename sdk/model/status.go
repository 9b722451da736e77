// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package model

// ItemState is a step of the per-item pipeline:
// Pending → (Skipped | Downloading) → (DownloadFailed | Downloaded) →
// Uploading → (UploadFailed | Uploaded).
type ItemState string

const (
	ItemPending        ItemState = "Pending"
	ItemSkipped        ItemState = "Skipped"
	ItemDownloading    ItemState = "Downloading"
	ItemDownloadFailed ItemState = "DownloadFailed"
	ItemDownloaded     ItemState = "Downloaded"
	ItemUploading      ItemState = "Uploading"
	ItemUploadFailed   ItemState = "UploadFailed"
	ItemUploaded       ItemState = "Uploaded"
)

func (s ItemState) String() string {
	return string(s)
}

// IsActive returns true while the item holds an item-queue slot.
func (s ItemState) IsActive() bool {
	return s == ItemDownloading || s == ItemDownloaded || s == ItemUploading
}

// IsFinished returns true for terminal states.
func (s ItemState) IsFinished() bool {
	return s == ItemSkipped || s == ItemDownloadFailed || s == ItemUploadFailed || s == ItemUploaded
}

// CanTransition reports whether next is a legal successor of s.
func (s ItemState) CanTransition(next ItemState) bool {
	switch s {
	case ItemPending:
		return next == ItemSkipped || next == ItemDownloading
	case ItemDownloading:
		return next == ItemDownloadFailed || next == ItemDownloaded
	case ItemDownloaded:
		return next == ItemUploading
	case ItemUploading:
		return next == ItemUploadFailed || next == ItemUploaded
	default:
		return false
	}
}
