// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strconv"
)

// ListAllPages follows the Admin API pagination and returns every post with
// the number of pages read.
func (s *PostsService) ListAllPages(ctx context.Context, req ListRequest) ([]Post, int, error) {
	var (
		elements []Post
		pages    int
	)

	pageParams := map[string]string{}
	if req.Params != nil {
		maps.Copy(pageParams, req.Params)
	}
	limit := req.PageSize
	if limit <= 0 {
		limit = 15
	}
	pageParams["limit"] = strconv.Itoa(limit)
	pageParams["page"] = "1"

	for {
		body, status, err := s.http.Do(ctx, http.MethodGet, s.http.BuildURL("posts", pageParams), nil, "")
		if err != nil {
			return nil, 0, err
		}
		if status != http.StatusOK {
			return nil, 0, fmt.Errorf("ghost responded with status %d", status)
		}

		var env postsEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, 0, fmt.Errorf("json parsing failed: %w", err)
		}
		elements = append(elements, env.Posts...)
		pages++

		next := env.Meta.Pagination.Next
		if next == nil || *next <= env.Meta.Pagination.Page {
			break
		}
		pageParams["page"] = strconv.Itoa(*next)
	}

	return elements, pages, nil
}
