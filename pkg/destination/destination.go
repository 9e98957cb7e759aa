// Package destination computes the target path for each selected file,
// including the numeric disambiguation that keeps multi-match batches from
// overwriting a single destination name.
package destination

import (
	"fmt"
	"path"
	"strings"
)

// CleanFolderName strips leading/trailing separators and collapses duplicate
// separators and dot segments. An empty folder stays empty (meaning "the
// session's current location").
func CleanFolderName(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return path.Clean(folder)
}

// Combine joins a folder and a file name with a single separator and
// normalizes the result. The folder may be empty.
func Combine(folder, file string) string {
	if folder == "" {
		return path.Clean(file)
	}
	return path.Clean(folder + "/" + file)
}

// ResolveName computes the destination file name for one matched source
// file.
//
// ordinal is the 1-based position in the match set, or 0 for a single-match
// operation. With an override name and a non-zero ordinal, the name is
// disambiguated; with an override and no ordinal it is used verbatim; with
// no override the source's base name is used (already distinct per source).
func ResolveName(sourcePath, overrideName string, ordinal int) string {
	name := overrideName
	switch {
	case name == "":
		name = path.Base(sourcePath)
	case ordinal > 0:
		name = enumerate(name, ordinal)
	}
	return name
}

// Resolve computes the full remote destination path for one matched source
// file. See ResolveName for the ordinal contract.
func Resolve(sourcePath, destFolder, overrideName string, ordinal int) string {
	return Combine(destFolder, ResolveName(sourcePath, overrideName, ordinal))
}

// enumerate inserts _<n> immediately before the first dot, or appends it
// when the name has no extension separator.
func enumerate(name string, n int) string {
	if i := strings.Index(name, "."); i >= 0 {
		return fmt.Sprintf("%s_%d%s", name[:i], n, name[i:])
	}
	return fmt.Sprintf("%s_%d", name, n)
}
