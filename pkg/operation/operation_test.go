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

package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/ftprc/pkg/exitcode"
	"github.com/walteh/ftprc/pkg/ftpsession"
	"github.com/walteh/ftprc/pkg/match"
	"github.com/walteh/ftprc/pkg/operation"
	"github.com/walteh/ftprc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🧪 newExecutor creates an executor over an in-memory session.
func newExecutor(t *testing.T, m *ftpsession.Memory) (context.Context, *operation.Executor) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	exec, err := operation.New(operation.Options{
		Session:  m,
		Reporter: status.NewQuietReporter(ctx),
	})
	require.NoError(t, err)
	return ctx, exec
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := operation.New(operation.Options{})
	assert.Error(t, err)

	_, err = operation.New(operation.Options{Session: ftpsession.NewMemory()})
	assert.Error(t, err)
}

func TestExactDeleteRemovesExactlyTheTarget(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/report.csv", []byte("r"))
	m.AddFile("/in/other.csv", []byte("o"))

	ctx, exec := newExecutor(t, m)

	report, err := exec.Delete(ctx, operation.Request{
		MatchType:        match.ExactMatch,
		SourceFolderName: "/in",
		SourceFileName:   "report.csv",
	})
	require.NoError(t, err)

	assert.False(t, m.HasFile("/in/report.csv"))
	assert.True(t, m.HasFile("/in/other.csv"), "only the named file is removed")

	require.Len(t, report.Outcomes, 1)
	assert.Equal(t, "/in/report.csv", report.Outcomes[0].Path, "outcome references the normalized path")
}

func TestExactDeleteFailureIsInvalidPath(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFolder("/in")

	ctx, exec := newExecutor(t, m)

	_, err := exec.Delete(ctx, operation.Request{
		MatchType:        match.ExactMatch,
		SourceFolderName: "/in",
		SourceFileName:   "missing.csv",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, exitcode.ErrInvalidPath)
	assert.Equal(t, exitcode.InvalidFilePath, exitcode.FromError(err))
}

func TestBatchDeleteSkipsFailedItems(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("a"))
	m.AddFile("/in/b.csv", []byte("b"))
	m.AddFile("/in/c.csv", []byte("c"))
	m.DeleteErr["/in/b.csv"] = errors.New("550 permission denied")

	ctx, exec := newExecutor(t, m)

	report, err := exec.Delete(ctx, operation.Request{
		MatchType:        match.RegexMatch,
		SourceFolderName: "/in",
		SourceFileName:   `\.csv$`,
	})
	require.NoError(t, err, "one bad file does not abort the batch")

	assert.False(t, m.HasFile("/in/a.csv"))
	assert.True(t, m.HasFile("/in/b.csv"))
	assert.False(t, m.HasFile("/in/c.csv"))
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())
}

func TestRegexDownloadEnumeratesOverrideName(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("first"))
	m.AddFile("/in/b.csv", []byte("second"))
	m.AddFile("/in/c.csv", []byte("third"))

	ctx, exec := newExecutor(t, m)
	dest := t.TempDir()

	report, err := exec.Download(ctx, operation.Request{
		MatchType:             match.RegexMatch,
		SourceFolderName:      "/in",
		SourceFileName:        `\.csv$`,
		DestinationFolderName: dest,
		DestinationFileName:   "out.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Succeeded())

	// Suffixes are assigned in discovery order.
	first, err := os.ReadFile(filepath.Join(dest, "out_1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(first))

	second, err := os.ReadFile(filepath.Join(dest, "out_2.csv"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(second))

	third, err := os.ReadFile(filepath.Join(dest, "out_3.csv"))
	require.NoError(t, err)
	assert.Equal(t, "third", string(third))
}

func TestDownloadMidBatchFailureLeavesNoPartialFile(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("first"))
	m.AddFile("/in/b.csv", []byte("second file content"))
	m.AddFile("/in/c.csv", []byte("third"))
	m.RetrMidStream["/in/b.csv"] = true

	ctx, exec := newExecutor(t, m)
	dest := t.TempDir()

	report, err := exec.Download(ctx, operation.Request{
		MatchType:             match.RegexMatch,
		SourceFolderName:      "/in",
		SourceFileName:        `\.csv$`,
		DestinationFolderName: dest,
		DestinationFileName:   "out.csv",
	})
	require.NoError(t, err, "items 1 and 3 still complete")
	assert.Equal(t, 2, report.Succeeded())
	assert.Equal(t, 1, report.Failed())

	assert.FileExists(t, filepath.Join(dest, "out_1.csv"))
	assert.NoFileExists(t, filepath.Join(dest, "out_2.csv"), "partial download must be removed")
	assert.FileExists(t, filepath.Join(dest, "out_3.csv"))
}

func TestSingleMatchDownloadUsesOverrideVerbatim(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("only"))

	ctx, exec := newExecutor(t, m)
	dest := t.TempDir()

	_, err := exec.Download(ctx, operation.Request{
		MatchType:             match.RegexMatch,
		SourceFolderName:      "/in",
		SourceFileName:        `\.csv$`,
		DestinationFolderName: dest,
		DestinationFileName:   "out.csv",
	})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dest, "out.csv"), "no suffix for a single match")
	assert.NoFileExists(t, filepath.Join(dest, "out_1.csv"))
}

func TestExactDownloadDerivesNameFromSource(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/report.csv", []byte("data"))

	ctx, exec := newExecutor(t, m)
	dest := t.TempDir()

	_, err := exec.Download(ctx, operation.Request{
		MatchType:             match.ExactMatch,
		SourceFolderName:      "/in",
		SourceFileName:        "report.csv",
		DestinationFolderName: dest,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dest, "report.csv"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestExactDownloadFailureMapsToNoMatches(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFolder("/in")

	ctx, exec := newExecutor(t, m)

	_, err := exec.Download(ctx, operation.Request{
		MatchType:             match.ExactMatch,
		SourceFolderName:      "/in",
		SourceFileName:        "missing.csv",
		DestinationFolderName: t.TempDir(),
	})
	require.Error(t, err)
	assert.Equal(t, exitcode.NoMatchesFound, exitcode.FromError(err))
}

func TestMoveProvisionsNestedDestination(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/report.csv", []byte("r"))

	ctx, exec := newExecutor(t, m)

	req := operation.Request{
		MatchType:             match.ExactMatch,
		SourceFolderName:      "/in",
		SourceFileName:        "report.csv",
		DestinationFolderName: "archive/2024",
	}

	_, err := exec.Move(ctx, req)
	require.NoError(t, err)

	assert.True(t, m.HasFolder("/archive"))
	assert.True(t, m.HasFolder("/archive/2024"))
	assert.True(t, m.HasFile("/archive/2024/report.csv"))
	assert.False(t, m.HasFile("/in/report.csv"))

	// A second identical move (folders already exist) still succeeds.
	m.AddFile("/in/report.csv", []byte("r2"))
	_, err = exec.Move(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []byte("r2"), m.FileContent("/archive/2024/report.csv"))
}

func TestRegexMoveEnumeratesOverrideName(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("a"))
	m.AddFile("/in/b.csv", []byte("b"))

	ctx, exec := newExecutor(t, m)

	_, err := exec.Move(ctx, operation.Request{
		MatchType:             match.RegexMatch,
		SourceFolderName:      "/in",
		SourceFileName:        `\.csv$`,
		DestinationFolderName: "dest",
		DestinationFileName:   "arch.csv",
	})
	require.NoError(t, err)

	assert.True(t, m.HasFile("/dest/arch_1.csv"))
	assert.True(t, m.HasFile("/dest/arch_2.csv"))
}

func TestMoveFailureAbortsBatch(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("a"))
	m.AddFile("/in/b.csv", []byte("b"))
	m.AddFile("/in/c.csv", []byte("c"))
	m.RenameErr = errors.New("550 rename refused")

	ctx, exec := newExecutor(t, m)

	report, err := exec.Move(ctx, operation.Request{
		MatchType:             match.RegexMatch,
		SourceFolderName:      "/in",
		SourceFileName:        `\.csv$`,
		DestinationFolderName: "dest",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, exitcode.ErrMove)
	assert.Equal(t, exitcode.MoveError, exitcode.FromError(err))
	assert.Len(t, report.Outcomes, 1, "the loop stops at the first failed rename")
}

func TestZeroMatchesPerformsNoOperations(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("a"))

	ctx, exec := newExecutor(t, m)

	_, err := exec.Delete(ctx, operation.Request{
		MatchType:        match.RegexMatch,
		SourceFolderName: "/in",
		SourceFileName:   `\.parquet$`,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, exitcode.ErrNoMatches)
	assert.Equal(t, exitcode.NoMatchesFound, exitcode.FromError(err))

	assert.True(t, m.HasFile("/in/a.csv"), "no deletes happen on a zero-match run")
	assert.Empty(t, m.Renames)
}

func TestExcludePatternsNarrowTheMatchSet(t *testing.T) {
	m := ftpsession.NewMemory()
	m.AddFile("/in/a.csv", []byte("a"))
	m.AddFile("/in/b.bak", []byte("b"))

	ctx, exec := newExecutor(t, m)

	_, err := exec.Delete(ctx, operation.Request{
		MatchType:        match.RegexMatch,
		SourceFolderName: "/in",
		SourceFileName:   `.`,
		Exclude:          []string{"*.bak"},
	})
	require.NoError(t, err)

	assert.False(t, m.HasFile("/in/a.csv"))
	assert.True(t, m.HasFile("/in/b.bak"), "excluded file survives")
}

func TestBadRegexIsAnError(t *testing.T) {
	m := ftpsession.NewMemory()
	ctx, exec := newExecutor(t, m)

	_, err := exec.Delete(ctx, operation.Request{
		MatchType:      match.RegexMatch,
		SourceFileName: `(`,
	})
	assert.Error(t, err)
}
