package generator

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/Vulkan-FIT/vkcpp-gen/errors"
)

// MetadataPrefixes mark header lines that change on every run without the
// bindings changing.
var MetadataPrefixes = []string{
	"// Generated by vkgen",
	"// Registry:",
}

// CheckResult holds the result of an up-to-date check.
type CheckResult struct {
	UpToDate bool
	// Differences lists files whose content differs, or that are missing
	// from the destination.
	Differences []string
}

// Check compares freshly generated files with those already in dir,
// ignoring metadata lines.
func Check(dir string, files Files) (*CheckResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, errors.Wrapf(err, "cannot check output directory %s", dir)
	}

	var diffs []string
	for _, name := range files.Names() {
		existing, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			diffs = append(diffs, name+" (missing)")
			continue
		}
		if err != nil {
			diffs = append(diffs, name+" (error: "+err.Error()+")")
			continue
		}
		if contentDiffers(files[name], existing) {
			diffs = append(diffs, name)
		}
	}

	return &CheckResult{
		UpToDate:    len(diffs) == 0,
		Differences: diffs,
	}, nil
}

func contentDiffers(fresh, existing []byte) bool {
	if bytes.Equal(fresh, existing) {
		return false
	}
	a, okA := filterMetadataLines(fresh)
	b, okB := filterMetadataLines(existing)
	return !okA || !okB || a != b
}

// filterMetadataLines drops metadata lines. It reports false when the
// content cannot be scanned, which callers treat as a difference.
func filterMetadataLines(content []byte) (string, bool) {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if isMetadata(strings.TrimSpace(line)) {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", false
	}
	return result.String(), true
}

func isMetadata(line string) bool {
	for _, p := range MetadataPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
