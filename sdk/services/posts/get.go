// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package posts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

func (s *PostsService) Get(ctx context.Context, req GetRequest) (*Post, error) {
	var resource string
	switch {
	case req.ID != "":
		resource = "posts/" + url.PathEscape(req.ID)
	case req.Slug != "":
		resource = "posts/slug/" + url.PathEscape(req.Slug)
	default:
		return nil, fmt.Errorf("you must specify id or slug")
	}

	body, _, err := s.http.Do(ctx, http.MethodGet, s.http.BuildURL(resource, nil), nil, "")
	if err != nil {
		return nil, err
	}

	var env postsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("json parsing failed: %w", err)
	}
	if len(env.Posts) == 0 {
		return nil, fmt.Errorf("post not found")
	}
	return &env.Posts[0], nil
}
