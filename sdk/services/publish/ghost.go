// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package publish creates blog content from settled units.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/model"
	"github.com/albumpost/albumpost-sdk/sdk/services/report"
)

var ErrNothingToPublish = errors.New("no uploaded images to publish")

// GhostPublisher creates one Ghost post per unit, with the unit title and one
// element per uploaded image.
type GhostPublisher struct {
	http config.GhostHTTP
	// Status is the post status sent to Ghost ("draft" when empty).
	Status string
}

func NewGhostPublisher(httpc config.GhostHTTP) *GhostPublisher {
	return &GhostPublisher{http: httpc}
}

type ghostPost struct {
	Title  string `json:"title"`
	HTML   string `json:"html"`
	Status string `json:"status,omitempty"`
}

type ghostPostsResponse struct {
	Posts []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"posts"`
}

// Publish posts the unit and returns the URL of the new post.
func (p *GhostPublisher) Publish(ctx context.Context, unit model.WorkUnit, items []model.ProcessedItem) (string, error) {
	html := report.PostHTML(items)
	if html == "" {
		return "", ErrNothingToPublish
	}

	status := p.Status
	if status == "" {
		status = "draft"
	}
	payload, err := json.Marshal(map[string][]ghostPost{
		"posts": {{Title: unit.Title, HTML: html, Status: status}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal post: %w", err)
	}

	url := p.http.BuildURL("posts", map[string]string{"source": "html"})
	resp, _, err := p.http.Do(ctx, http.MethodPost, url, bytes.NewReader(payload), "application/json")
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}

	var parsed ghostPostsResponse
	if err := json.Unmarshal(resp, &parsed); err != nil {
		return "", fmt.Errorf("could not parse Ghost post response: %w", err)
	}
	if len(parsed.Posts) == 0 || parsed.Posts[0].URL == "" {
		return "", errors.New("could not parse Ghost post URL from response")
	}
	return parsed.Posts[0].URL, nil
}
