// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package status provides user-friendly feedback about remote file
// operations, mirrored to zerolog for debugging.
package status

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter prints per-item progress and outcomes for a run.
type Reporter struct {
	log   zerolog.Logger // for debug/error logging
	quiet bool
}

// 🎯 NewReporter creates a reporter bound to the context logger.
func NewReporter(ctx context.Context) *Reporter {
	return &Reporter{log: *zerolog.Ctx(ctx)}
}

// NewQuietReporter creates a reporter that only logs, for tests.
func NewQuietReporter(ctx context.Context) *Reporter {
	return &Reporter{log: *zerolog.Ctx(ctx), quiet: true}
}

// 🔍 MatchesFound announces the size of the working set before the loop.
func (r *Reporter) MatchesFound(n int, verb string) {
	msg := fmt.Sprintf("%d files found. Preparing to %s...", n, verb)
	if !r.quiet {
		pterm.Info.Println(msg)
	}
	r.log.Info().Int("matches", n).Msg(msg)
}

// 📝 ItemStart announces one item of a batch.
func (r *Reporter) ItemStart(verb string, index, total int, path string) {
	msg := fmt.Sprintf("%s file %d of %d", verb, index, total)
	if !r.quiet {
		pterm.Info.Println(fmt.Sprintf("%s: %s", msg, color.CyanString(path)))
	}
	r.log.Info().Str("path", path).Msg(msg)
}

// ✅ ItemDone reports a completed item.
func (r *Reporter) ItemDone(path, detail string) {
	msg := fmt.Sprintf("%s %s", color.CyanString(path), detail)
	if !r.quiet {
		pterm.Success.Println(msg)
	}
	r.log.Info().Str("path", path).Msg(detail)
}

// ⏭️ ItemSkipped reports a failed item that the batch is skipping past.
func (r *Reporter) ItemSkipped(path string, err error) {
	msg := fmt.Sprintf("Failed to process %s... Skipping", color.CyanString(path))
	if !r.quiet {
		pterm.Warning.Println(msg)
		pterm.Error.Println(err)
	}
	r.log.Error().Err(err).Str("path", path).Msg("skipping failed item")
}

// ❌ Failure reports a fatal per-path diagnostic before the run dies.
func (r *Reporter) Failure(path string, err error) {
	msg := fmt.Sprintf("Failed to process %s", color.CyanString(path))
	if !r.quiet {
		pterm.Error.Println(msg)
		pterm.Error.Println(err)
	}
	r.log.Error().Err(err).Str("path", path).Msg("operation failed")
}
