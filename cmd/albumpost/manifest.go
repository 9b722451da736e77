// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/albumpost/albumpost-sdk/sdk/model"
	"github.com/albumpost/albumpost-sdk/sdk/services/report"
)

// manifest is the batch input; a bare list of units is accepted too.
type manifest struct {
	Units []model.WorkUnit `json:"units"`
}

func loadManifest(path string) ([]model.WorkUnit, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return parseManifest(b)
}

func parseManifest(b []byte) ([]model.WorkUnit, error) {
	trimmed := strings.TrimSpace(string(b))
	if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "[") {
		var units []model.WorkUnit
		if err := yaml.Unmarshal(b, &units); err != nil {
			return nil, fmt.Errorf("invalid manifest: %w", err)
		}
		return units, nil
	}
	var m manifest
	if err := yaml.UnmarshalStrict(b, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return m.Units, nil
}

// runReport is what a run writes out: album rows, image rows and totals.
type runReport struct {
	Summary report.Summary    `json:"summary"`
	Units   []report.UnitRow  `json:"units"`
	Images  []report.ImageRow `json:"images"`
}

func writeReport(w io.Writer, result model.BatchResult, format string) error {
	return writeDocument(w, runReport{
		Summary: report.Summarize(result),
		Units:   report.UnitRows(result),
		Images:  report.BatchImageRows(result),
	}, format)
}

// saveReport writes the report to path, or stdout when path is empty. A failed
// close is reported, since it may mean a truncated file.
func saveReport(path string, result model.BatchResult, format string) (err error) {
	if path == "" {
		return writeReport(os.Stdout, result, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to write report file: %w", cerr)
		}
	}()
	return writeReport(f, result, format)
}

func writeDocument(w io.Writer, doc any, format string) error {
	var (
		b   []byte
		err error
	)
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		b, err = yaml.Marshal(doc)
	case "json":
		b, err = json.MarshalIndent(doc, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	_, err = w.Write(b)
	return err
}
