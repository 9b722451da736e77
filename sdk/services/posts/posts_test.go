// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package posts_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/services/posts"
)

const testKey = "keyid:00112233445566778899aabbccddeeff"

func newService(t *testing.T, h http.HandlerFunc) *posts.PostsService {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return posts.NewPostsServiceWithHTTP(config.NewGhostHTTP(srv.Client(), config.GhostConfig{AdminURL: srv.URL, AdminAPIKey: testKey}))
}

func TestNewPostsServiceRequiresGhostConfig(t *testing.T) {
	if _, err := posts.NewPostsService(context.Background(), config.Default()); err == nil {
		t.Fatal("expected an error without ghost config")
	}
}

func TestListAllPages(t *testing.T) {
	const pages = 3
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ghost/api/admin/posts/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "2" || r.URL.Query().Get("filter") != "tag:albums" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		next := "null"
		if page < pages {
			next = strconv.Itoa(page + 1)
		}
		fmt.Fprintf(w, `{"posts":[{"id":"p%d-a","title":"a"},{"id":"p%d-b","title":"b"}],"meta":{"pagination":{"page":%d,"pages":%d,"next":%s}}}`,
			page, page, page, pages, next)
	})

	elements, n, err := svc.ListAllPages(context.Background(), posts.ListRequest{
		Params:   map[string]string{"filter": "tag:albums"},
		PageSize: 2,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if n != pages || len(elements) != 2*pages {
		t.Fatalf("got %d posts over %d pages", len(elements), n)
	}
	if elements[0].ID != "p1-a" || elements[len(elements)-1].ID != "p3-b" {
		t.Errorf("order = %s ... %s", elements[0].ID, elements[len(elements)-1].ID)
	}
}

func TestGetByIDAndSlug(t *testing.T) {
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ghost/api/admin/posts/p1/", "/ghost/api/admin/posts/slug/holidays/":
			_, _ = w.Write([]byte(`{"posts":[{"id":"p1","slug":"holidays","title":"Holidays","status":"draft","url":"https://blog/p/holidays/"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[{"message":"Post not found."}]}`))
		}
	})
	ctx := context.Background()

	byID, err := svc.Get(ctx, posts.GetRequest{ID: "p1"})
	if err != nil {
		t.Fatalf("Get by ID failed: %v", err)
	}
	bySlug, err := svc.Get(ctx, posts.GetRequest{Slug: "holidays"})
	if err != nil {
		t.Fatalf("Get by slug failed: %v", err)
	}
	if byID.ID != bySlug.ID || byID.URL != "https://blog/p/holidays/" {
		t.Errorf("byID=%+v bySlug=%+v", byID, bySlug)
	}

	if _, err := svc.Get(ctx, posts.GetRequest{ID: "missing"}); err == nil || !strings.Contains(err.Error(), "Post not found.") {
		t.Errorf("missing post error = %v", err)
	}
	if _, err := svc.Get(ctx, posts.GetRequest{}); err == nil {
		t.Errorf("expected an error without id or slug")
	}
}

func TestDelete(t *testing.T) {
	var deleted string
	svc := newService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		deleted = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	if err := svc.Delete(context.Background(), posts.DeleteRequest{ID: "p1"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != "/ghost/api/admin/posts/p1/" {
		t.Errorf("deleted %q", deleted)
	}
	if err := svc.Delete(context.Background(), posts.DeleteRequest{}); err == nil {
		t.Errorf("expected an error without id")
	}
}
