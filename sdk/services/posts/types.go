// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package posts

// Post is the subset of a Ghost post the SDK reads back.
type Post struct {
	ID          string `json:"id"                     yaml:"id"`
	UUID        string `json:"uuid,omitempty"         yaml:"uuid,omitempty"`
	Title       string `json:"title"                  yaml:"title"`
	Slug        string `json:"slug"                   yaml:"slug"`
	Status      string `json:"status"                 yaml:"status"`
	URL         string `json:"url"                    yaml:"url"`
	CreatedAt   string `json:"created_at,omitempty"   yaml:"createdAt,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"   yaml:"updatedAt,omitempty"`
	PublishedAt string `json:"published_at,omitempty" yaml:"publishedAt,omitempty"`
}

type GetRequest struct {
	ID   string
	Slug string
}

type ListRequest struct {
	// Params are passed to the Admin API as is (filter, order, fields...).
	Params map[string]string
	// PageSize is the "limit" of each page; 15 when zero.
	PageSize int
}

type DeleteRequest struct {
	ID string
}

type postsEnvelope struct {
	Posts []Post `json:"posts"`
	Meta  struct {
		Pagination struct {
			Page  int  `json:"page"`
			Pages int  `json:"pages"`
			Total int  `json:"total"`
			Next  *int `json:"next"`
		} `json:"pagination"`
	} `json:"meta"`
}
