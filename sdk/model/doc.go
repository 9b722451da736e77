// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package model holds the types shared by the transfer pipeline, the reporter
// and the publishers: work units, media references and per-item outcomes.
package model
