// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"html"
	"strings"

	"github.com/albumpost/albumpost-sdk/sdk/model"
)

// PostElements renders one HTML element per uploaded item, in item order.
// Items with a description become a figure with a caption.
func PostElements(items []model.ProcessedItem) []string {
	var out []string
	for _, it := range items {
		url := it.DestinationURL()
		if url == "" {
			continue
		}
		img := `<img src="` + html.EscapeString(url) + `" alt="` + html.EscapeString(it.MediaReference.Description) + `"/>`
		desc := strings.TrimSpace(it.MediaReference.Description)
		if desc == "" {
			out = append(out, img)
			continue
		}
		out = append(out, "<figure>"+img+"<figcaption>"+html.EscapeString(desc)+"</figcaption></figure>")
	}
	return out
}

// PostHTML joins the elements into a post body.
func PostHTML(items []model.ProcessedItem) string {
	return strings.Join(PostElements(items), "\n")
}
