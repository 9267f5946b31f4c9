package changelog

import (
	"fmt"
	"os"
	"strings"
)

// fileTitle is the fixed block kept at the top of a persisted changelog
// file. New release notes are inserted directly beneath it.
const fileTitle = "# CHANGELOG\r\n\r\n_This file is auto-generated by relkit and should not be edited manually._\r\n\r\n"

// titleLines is the number of leading lines the title block occupies in an
// existing file (title, description, blank separator).
const titleLines = 3

// WriteFile prepends notes to the changelog file at path, keeping the fixed
// title block at the top. A missing file is created.
func WriteFile(path, notes string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return writeAll(path, fileTitle+notes)
	}
	if err != nil {
		return fmt.Errorf("reading changelog file %s: %w", path, err)
	}

	var b strings.Builder
	b.WriteString(fileTitle)
	b.WriteString(notes)

	// Keep previous releases, skipping the old title block.
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(normalized, "\n"), "\n")
	for i, line := range lines {
		if i < titleLines {
			continue
		}
		b.WriteString("\r\n")
		b.WriteString(line)
	}
	b.WriteString("\r\n")

	return writeAll(path, b.String())
}

func writeAll(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("writing changelog file %s: %w", path, err)
	}
	return nil
}
