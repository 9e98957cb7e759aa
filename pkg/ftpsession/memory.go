package ftpsession

import (
	"bytes"
	"io"
	"path"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Memory is an in-memory Session used by tests. It behaves like a small FTP
// server: a single shared current-location cursor, no recursive mkdir, and
// ChangeDir failing on file paths (which is what the classification probe
// keys off).
type Memory struct {
	cwd     string
	files   map[string][]byte
	folders map[string]bool
	order   []string // insertion order of all paths, drives listing order

	// BareNames makes NameList return names without the parent prefix,
	// mimicking servers that do the same.
	BareNames bool
	// Typed enables ListEntries. When false it reports
	// ErrListingUnsupported, forcing the probe fallback.
	Typed bool

	// RetrErr fails Retr at open for the given path.
	RetrErr map[string]error
	// RetrMidStream makes Retr return a reader that yields a few bytes and
	// then fails, for partial-download tests.
	RetrMidStream map[string]bool
	// DeleteErr fails Delete for the given path.
	DeleteErr map[string]error
	// RenameErr fails every Rename.
	RenameErr error

	// Renames records every successful rename as "from -> to".
	Renames []string
}

var _ Session = (*Memory)(nil)

// NewMemory creates an empty server with "/" as the current location.
func NewMemory() *Memory {
	return &Memory{
		cwd:           "/",
		files:         map[string][]byte{},
		folders:       map[string]bool{"/": true},
		RetrErr:       map[string]error{},
		RetrMidStream: map[string]bool{},
		DeleteErr:     map[string]error{},
	}
}

// AddFile registers a file (and its parent folders) at an absolute path.
func (m *Memory) AddFile(p string, content []byte) {
	p = path.Clean("/" + strings.TrimPrefix(p, "/"))
	m.ensureFolders(path.Dir(p))
	if _, ok := m.files[p]; !ok {
		m.order = append(m.order, p)
	}
	m.files[p] = content
}

// AddFolder registers a folder (and its parents) at an absolute path.
func (m *Memory) AddFolder(p string) {
	m.ensureFolders(path.Clean("/" + strings.TrimPrefix(p, "/")))
}

func (m *Memory) ensureFolders(p string) {
	if p == "" || p == "." {
		return
	}
	segs := strings.Split(strings.Trim(p, "/"), "/")
	cur := ""
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		cur = cur + "/" + seg
		if !m.folders[cur] {
			m.folders[cur] = true
			m.order = append(m.order, cur)
		}
	}
}

// HasFile reports whether a file exists at the absolute path.
func (m *Memory) HasFile(p string) bool {
	_, ok := m.files[m.abs(p)]
	return ok
}

// HasFolder reports whether a folder exists at the absolute path.
func (m *Memory) HasFolder(p string) bool {
	return m.folders[m.abs(p)]
}

// FileContent returns the stored bytes for a file path.
func (m *Memory) FileContent(p string) []byte {
	return m.files[m.abs(p)]
}

// FolderCount returns the number of folders, excluding the root.
func (m *Memory) FolderCount() int {
	return len(m.folders) - 1
}

func (m *Memory) abs(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = m.cwd + "/" + p
	}
	return path.Clean(p)
}

func (m *Memory) CurrentDir() (string, error) {
	return m.cwd, nil
}

func (m *Memory) ChangeDir(p string) error {
	target := m.abs(p)
	if !m.folders[target] {
		return errors.Errorf("550 %s: not a directory", target)
	}
	m.cwd = target
	return nil
}

func (m *Memory) NameList(p string) ([]string, error) {
	folder := m.abs(p)
	if !m.folders[folder] {
		return nil, errors.Errorf("550 %s: no such directory", folder)
	}

	var names []string
	for _, candidate := range m.order {
		if path.Dir(candidate) != folder {
			continue
		}
		if m.BareNames {
			names = append(names, path.Base(candidate))
		} else {
			names = append(names, candidate)
		}
	}
	return names, nil
}

func (m *Memory) ListEntries(p string) ([]Entry, error) {
	if !m.Typed {
		return nil, errors.Errorf("listing %s: %w", p, ErrListingUnsupported)
	}

	folder := m.abs(p)
	if !m.folders[folder] {
		return nil, errors.Errorf("550 %s: no such directory", folder)
	}

	var entries []Entry
	for _, candidate := range m.order {
		if path.Dir(candidate) != folder {
			continue
		}
		kind := KindFile
		if m.folders[candidate] {
			kind = KindFolder
		}
		entries = append(entries, Entry{Path: path.Base(candidate), Kind: kind})
	}
	return entries, nil
}

func (m *Memory) Delete(p string) error {
	target := m.abs(p)
	if err := m.DeleteErr[target]; err != nil {
		return err
	}
	if _, ok := m.files[target]; !ok {
		return errors.Errorf("550 %s: no such file", target)
	}
	delete(m.files, target)
	m.removeFromOrder(target)
	return nil
}

func (m *Memory) Rename(from, to string) error {
	if m.RenameErr != nil {
		return m.RenameErr
	}
	src := m.abs(from)
	dst := m.abs(to)

	content, ok := m.files[src]
	if !ok {
		return errors.Errorf("550 %s: no such file", src)
	}
	if !m.folders[path.Dir(dst)] {
		return errors.Errorf("550 %s: destination folder does not exist", path.Dir(dst))
	}

	delete(m.files, src)
	m.removeFromOrder(src)
	if _, exists := m.files[dst]; !exists {
		m.order = append(m.order, dst)
	}
	m.files[dst] = content
	m.Renames = append(m.Renames, src+" -> "+dst)
	return nil
}

func (m *Memory) Retr(p string) (io.ReadCloser, error) {
	target := m.abs(p)
	if err := m.RetrErr[target]; err != nil {
		return nil, err
	}

	content, ok := m.files[target]
	if !ok {
		return nil, errors.Errorf("550 %s: no such file", target)
	}

	if m.RetrMidStream[target] {
		return io.NopCloser(&brokenReader{data: content}), nil
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (m *Memory) FileSize(p string) (int64, error) {
	content, ok := m.files[m.abs(p)]
	if !ok {
		return 0, errors.Errorf("550 %s: no such file", m.abs(p))
	}
	return int64(len(content)), nil
}

func (m *Memory) MakeDir(p string) error {
	target := m.abs(p)
	if _, isFile := m.files[target]; isFile || m.folders[target] {
		return errors.Errorf("550 %s: already exists", target)
	}
	if !m.folders[path.Dir(target)] {
		return errors.Errorf("550 %s: parent does not exist", target)
	}
	m.folders[target] = true
	m.order = append(m.order, target)
	return nil
}

func (m *Memory) Quit() error {
	return nil
}

func (m *Memory) removeFromOrder(p string) {
	for idx, candidate := range m.order {
		if candidate == p {
			m.order = append(m.order[:idx], m.order[idx+1:]...)
			return
		}
	}
}

// brokenReader yields the first half of data and then fails.
type brokenReader struct {
	data []byte
	off  int
}

func (b *brokenReader) Read(p []byte) (int, error) {
	half := len(b.data) / 2
	if b.off >= half {
		return 0, errors.Errorf("426 connection closed; transfer aborted")
	}
	n := copy(p, b.data[b.off:half])
	b.off += n
	return n, nil
}
