package summarizer

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/camrecord/pkg/mocks"
)

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(FromResult(sampleResult()))

	checks := []string{
		"# Recording Summary",
		"0f8fad5b-d9cb-469f-a165-70867728950e",
		"cameras 0 and 2",
		"| FPS | 30 |",
		"2.00s",
		"| Status | ok |",
		"camera_0__20240115_103000.mp4",
		"1280x720",
		"| right | 2 |",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
	if strings.Contains(result, "## Problems") {
		t.Error("expected no problems section")
	}
}

func TestMarkdownFormatter_Format_Failed(t *testing.T) {
	r := sampleResult()
	r.Recordings = nil
	r.Err = errors.New("could not open camera 0")

	result := NewMarkdownFormatter().Format(FromResult(r))

	for _, check := range []string{"| Status | failed |", "## Problems", "- could not open camera 0", "| - | - |"} {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestFormatFunc(t *testing.T) {
	f := FormatFunc(func(s *Summary) string { return s.Session.ID })
	if got := f.Format(&Summary{Session: SessionInfo{ID: "x"}}); got != "x" {
		t.Errorf("expected x, got %q", got)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "hello" }), fs)

	path := filepath.Join("out", "summary.md")
	if err := w.Write(path, NewSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile(path)
	if !ok || string(data) != "hello" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("read-only") }
	w := NewWriter(NewMarkdownFormatter(), fs)

	if err := w.Write("summary.md", NewSummary()); err == nil {
		t.Error("expected error")
	}
}

func TestReporter(t *testing.T) {
	fs := mocks.NewFileSystem()
	r := NewReporter(fs)
	result := sampleResult()

	if err := r.Report(result); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	path := filepath.Join("recordings", "session_"+result.ID+".md")
	data, ok := fs.GetFile(path)
	if !ok {
		t.Fatalf("expected summary at %s", path)
	}
	if !strings.Contains(string(data), "# Recording Summary") {
		t.Error("expected markdown summary")
	}
}
