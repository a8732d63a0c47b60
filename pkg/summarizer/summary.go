// Package summarizer provides summary generation for recording sessions.
package summarizer

import (
	"time"

	"github.com/user/camrecord/pkg/orchestrator"
)

// Summary contains all data collected during a recording session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	Session SessionInfo

	// Cameras holds one entry per side, left first.
	Cameras []CameraInfo

	// Problems are setup and finalize errors, in order.
	Problems []string
}

// SessionInfo describes the session as a whole.
type SessionInfo struct {
	ID        string
	Source    string
	OutputDir string
	FPS       int
	Started   time.Time
	Ended     time.Time
	Failed    bool
}

// Duration returns the wall time of the session.
func (s SessionInfo) Duration() time.Duration {
	return s.Ended.Sub(s.Started)
}

// CameraInfo describes one side.
type CameraInfo struct {
	Side     string
	CameraID int
	Filename string
	Width    int
	Height   int
	// Frames encoded and ticks dropped.
	Frames  int
	Dropped int
	// DurationSecs is the recorder's own duration; zero when it did not
	// finalize.
	DurationSecs float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// FromResult builds a Summary from a finished session.
func FromResult(r orchestrator.SessionResult) *Summary {
	b := NewBuilder().WithSession(SessionInfo{
		ID:        r.ID,
		Source:    r.Spec.String(),
		OutputDir: r.OutputDir,
		FPS:       r.FPS,
		Started:   r.Started,
		Ended:     r.Ended,
		Failed:    r.Err != nil,
	})

	ids := [2]int{r.Spec.Left, r.Spec.Right}
	for i, side := range []orchestrator.Side{orchestrator.Left, orchestrator.Right} {
		cam := CameraInfo{
			Side:     side.String(),
			CameraID: ids[i],
			Frames:   r.Frames[i],
			Dropped:  r.Dropped[i],
		}
		for _, m := range r.Recordings {
			if m.CameraID == ids[i] {
				cam.Filename = m.Filename
				cam.Width = m.Width
				cam.Height = m.Height
				cam.DurationSecs = m.DurationSecs
				break
			}
		}
		b.WithCamera(cam)
	}

	if r.Err != nil {
		b.WithProblem(r.Err.Error())
	}
	for _, err := range r.FinalizeErrors {
		b.WithProblem(err.Error())
	}
	return b.Build()
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets session information.
func (b *Builder) WithSession(info SessionInfo) *Builder {
	b.summary.Session = info
	return b
}

// WithCamera appends a camera.
func (b *Builder) WithCamera(cam CameraInfo) *Builder {
	b.summary.Cameras = append(b.summary.Cameras, cam)
	return b
}

// WithProblem appends an error message.
func (b *Builder) WithProblem(msg string) *Builder {
	b.summary.Problems = append(b.summary.Problems, msg)
	return b
}

// WithGeneratedAt overrides the generation time.
func (b *Builder) WithGeneratedAt(t time.Time) *Builder {
	b.summary.GeneratedAt = t
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
