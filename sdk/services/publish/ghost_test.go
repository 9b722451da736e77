// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/albumpost/albumpost-sdk/sdk/config"
	"github.com/albumpost/albumpost-sdk/sdk/model"
)

const testKey = "keyid:00112233445566778899aabbccddeeff"

func uploadedItem(id, url, desc string) model.ProcessedItem {
	return model.ProcessedItem{
		MediaReference: model.MediaReference{ID: id, MimeType: "image/jpeg", Description: desc},
		Download:       model.DownloadSucceeded("/tmp/"+id+".jpg", id+".jpg"),
		Upload:         model.UploadSucceeded(url),
	}
}

func TestGhostPublisherPublish(t *testing.T) {
	var got struct {
		Posts []ghostPost `json:"posts"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ghost/api/admin/posts/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.URL.Query().Get("source") != "html" {
			t.Errorf("missing source=html")
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Ghost ") {
			t.Errorf("missing Ghost authorization")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1","url":"https://blog.example.com/holidays/"}]}`))
	}))
	defer srv.Close()

	p := NewGhostPublisher(config.NewGhostHTTP(srv.Client(), config.GhostConfig{AdminURL: srv.URL, AdminAPIKey: testKey}))
	items := []model.ProcessedItem{
		uploadedItem("m1", "https://cdn/m1.jpg", "beach"),
		model.SkippedItem(model.MediaReference{ID: "m2", MimeType: "video/mp4"}),
		uploadedItem("m3", "https://cdn/m3.jpg", ""),
	}

	url, err := p.Publish(context.Background(), model.WorkUnit{UnitID: "a1", Title: "Holidays"}, items)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if url != "https://blog.example.com/holidays/" {
		t.Errorf("url = %q", url)
	}
	if len(got.Posts) != 1 {
		t.Fatalf("posts sent = %d", len(got.Posts))
	}
	post := got.Posts[0]
	if post.Title != "Holidays" || post.Status != "draft" {
		t.Errorf("post = %+v", post)
	}
	if !strings.Contains(post.HTML, "<figcaption>beach</figcaption>") || !strings.Contains(post.HTML, `src="https://cdn/m3.jpg"`) {
		t.Errorf("html = %q", post.HTML)
	}
}

func TestGhostPublisherErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusUnprocessableEntity, `{"errors":[{"message":"Validation error"}]}`, "Validation error"},
		{"bad json", http.StatusOK, `not json`, "could not parse Ghost post response"},
		{"no url", http.StatusOK, `{"posts":[]}`, "could not parse Ghost post URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewGhostPublisher(config.NewGhostHTTP(srv.Client(), config.GhostConfig{AdminURL: srv.URL, AdminAPIKey: testKey}))
			_, err := p.Publish(context.Background(), model.WorkUnit{Title: "t"}, []model.ProcessedItem{uploadedItem("m1", "https://cdn/m1.jpg", "")})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGhostPublisherNothingToPublish(t *testing.T) {
	p := NewGhostPublisher(config.NewGhostHTTP(nil, config.GhostConfig{AdminURL: "http://unused", AdminAPIKey: testKey}))
	_, err := p.Publish(context.Background(), model.WorkUnit{Title: "t"}, []model.ProcessedItem{
		{MediaReference: model.MediaReference{ID: "m1"}, Download: model.DownloadFailed("404")},
	})
	if !errors.Is(err, ErrNothingToPublish) {
		t.Fatalf("err = %v, want ErrNothingToPublish", err)
	}
}
