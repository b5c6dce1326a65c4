package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/germwalk/pkg/trajectory"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// FormatFor picks the export format: an explicit format wins, then the
// output file extension, then JSON.
func FormatFor(format, path string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// WriteTrajectories exports trajectories to w.
func WriteTrajectories(w io.Writer, format string, trs []trajectory.Trajectory) error {
	switch format {
	case FormatJSON:
		return trajectory.WriteJSON(w, trs)
	case FormatCSV:
		return trajectory.WriteCSV(w, trs)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteTrajectoriesFile exports trajectories to path, replacing it.
func WriteTrajectoriesFile(path, format string, trs []trajectory.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := WriteTrajectories(f, format, trs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
