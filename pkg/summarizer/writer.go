package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/user/camrecord/pkg/adapters/osfilesystem"
	"github.com/user/camrecord/pkg/orchestrator"
	"github.com/user/camrecord/pkg/ports"
)

// Writer writes formatted summaries to files.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a new Writer with the given Formatter. A nil fs
// writes to the local disk.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	if fs == nil {
		fs = osfilesystem.New()
	}
	return &Writer{
		formatter: formatter,
		fs:        fs,
	}
}

// Write formats the summary and writes it to the specified path.
// Creates parent directories if they don't exist.
func (w *Writer) Write(path string, summary *Summary) error {
	content := w.formatter.Format(summary)

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// FileName returns the summary file name for a session.
func FileName(sessionID string) string {
	return "session_" + sessionID + ".md"
}

// Reporter writes a Markdown summary next to the recordings of every
// finished session.
type Reporter struct {
	writer *Writer
}

// NewReporter creates a Reporter.
func NewReporter(fs ports.FileSystem) *Reporter {
	return &Reporter{writer: NewWriter(NewMarkdownFormatter(), fs)}
}

// Report implements orchestrator.Reporter.
func (r *Reporter) Report(result orchestrator.SessionResult) error {
	path := filepath.Join(result.OutputDir, FileName(result.ID))
	return r.writer.Write(path, FromResult(result))
}

var _ orchestrator.Reporter = (*Reporter)(nil)
