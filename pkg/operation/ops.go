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

package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/walteh/ftprc/pkg/destination"
	"github.com/walteh/ftprc/pkg/exitcode"
	"github.com/walteh/ftprc/pkg/provision"
	"gitlab.com/tozd/go/errors"
)

// unitOp is one of delete/move/download, plugged into the shared engine.
type unitOp interface {
	// verb is the imperative form for announcements ("download").
	verb() string
	// gerund is the progress form ("Downloading").
	gerund() string
	// fatalPerItem reports whether one failed item aborts the batch.
	fatalPerItem() bool
	// execute performs the operation on one source path. ordinal is the
	// 1-based match-set position, or 0 for a single match.
	execute(ctx context.Context, source string, ordinal int) (dest string, err error)
}

// 🗑️ deleteOp removes one remote file.
type deleteOp struct {
	e *Executor
}

func (deleteOp) verb() string       { return "delete" }
func (deleteOp) gerund() string     { return "Deleting" }
func (deleteOp) fatalPerItem() bool { return false }

func (d deleteOp) execute(ctx context.Context, source string, _ int) (string, error) {
	if err := d.e.sess.Delete(source); err != nil {
		return "", errors.Errorf("deleting %s: %w", source, errors.Join(err, exitcode.ErrInvalidPath))
	}
	d.e.reporter.ItemDone(source, "successfully deleted")
	return source, nil
}

// 📦 moveOp renames one remote file into the destination folder.
type moveOp struct {
	e   *Executor
	req Request
}

func (moveOp) verb() string       { return "move" }
func (moveOp) gerund() string     { return "Moving" }
func (moveOp) fatalPerItem() bool { return true }

func (m moveOp) execute(ctx context.Context, source string, ordinal int) (string, error) {
	destFolder := destination.CleanFolderName(m.req.DestinationFolderName)
	dest := destination.Resolve(source, destFolder, m.req.DestinationFileName, ordinal)

	if destFolder != "" {
		if err := provision.EnsureRemotePath(ctx, m.e.sess, destFolder); err != nil {
			return "", errors.Errorf("provisioning destination for %s: %w", source, errors.Join(err, exitcode.ErrMove))
		}
	}

	if err := m.e.sess.Rename(source, dest); err != nil {
		return "", errors.Errorf("moving %s to %s: %w", source, dest, errors.Join(err, exitcode.ErrMove))
	}

	m.e.reporter.ItemDone(source, "successfully moved to "+dest)
	return dest, nil
}

// ⬇️ downloadOp streams one remote file to local storage.
type downloadOp struct {
	e   *Executor
	req Request
}

func (downloadOp) verb() string       { return "download" }
func (downloadOp) gerund() string     { return "Downloading" }
func (downloadOp) fatalPerItem() bool { return false }

func (d downloadOp) execute(ctx context.Context, source string, ordinal int) (string, error) {
	// The destination is a local path: filepath semantics, absolute paths
	// preserved.
	name := destination.ResolveName(source, d.req.DestinationFileName, ordinal)
	local := filepath.Join(filepath.FromSlash(d.req.DestinationFolderName), name)

	if err := provision.EnsureLocalDir(filepath.Dir(local)); err != nil {
		return "", err
	}

	if err := d.fetch(source, local); err != nil {
		return "", errors.Errorf("downloading %s: %w", source, err)
	}

	d.e.reporter.ItemDone(source, "successfully downloaded to "+local)
	return local, nil
}

// fetch streams the remote bytes into the local file. Any failure removes
// the partially written file before the error is surfaced.
func (d downloadOp) fetch(source, local string) (err error) {
	reader, err := d.e.sess.Retr(source)
	if err != nil {
		return err
	}
	defer reader.Close()

	out, err := os.Create(local)
	if err != nil {
		return errors.Errorf("creating %s: %w", local, err)
	}

	defer func() {
		closeErr := out.Close()
		if err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(local)
		}
	}()

	if _, err := io.Copy(out, reader); err != nil {
		return errors.Errorf("streaming to %s: %w", local, err)
	}
	return nil
}
