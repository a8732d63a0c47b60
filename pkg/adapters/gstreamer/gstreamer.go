// Package gstreamer implements capture, encode and decode pipelines on top
// of GStreamer through go-gst.
package gstreamer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

var (
	// ErrElementMissing is returned when a required plugin is not installed.
	ErrElementMissing = errors.New("gstreamer: element not available")

	// ErrNoSample is returned when the appsink yields nothing in time.
	ErrNoSample = errors.New("gstreamer: no sample")

	// ErrEOS is returned when the appsink reached end of stream.
	ErrEOS = errors.New("gstreamer: end of stream")

	// ErrClosed is returned when a torn-down pipeline is used.
	ErrClosed = errors.New("gstreamer: pipeline closed")
)

var initOnce sync.Once

// Init initialises GStreamer once per process. Every constructor in this
// package calls it, so callers never need to.
func Init() {
	initOnce.Do(func() {
		gst.Init(nil)
	})
}

// HasElements reports whether every named element factory is installed.
func HasElements(names ...string) bool {
	Init()
	for _, name := range names {
		elem, err := gst.NewElement(name)
		if err != nil {
			return false
		}
		elem.SetState(gst.StateNull)
	}
	return true
}

func requireElements(names ...string) error {
	Init()
	for _, name := range names {
		elem, err := gst.NewElement(name)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrElementMissing, name)
		}
		elem.SetState(gst.StateNull)
	}
	return nil
}

// launch parses a pipeline description and returns it with the named element.
func launch(desc, name string) (*gst.Pipeline, *gst.Element, error) {
	Init()
	pipeline, err := gst.NewPipelineFromString(desc)
	if err != nil {
		return nil, nil, fmt.Errorf("gstreamer: parse pipeline: %w", err)
	}
	elem, err := pipeline.GetElementByName(name)
	if err != nil {
		pipeline.SetState(gst.StateNull)
		return nil, nil, fmt.Errorf("gstreamer: element %q: %w", name, err)
	}
	return pipeline, elem, nil
}

// pullFrame pulls one sample from sink and returns a packed copy of its
// pixels. The mapped buffer is owned by GStreamer and must not escape.
func pullFrame(sink *app.Sink, timeout time.Duration, width, height int) ([]byte, error) {
	sample := sink.TryPullSample(timeout)
	if sample == nil {
		if sink.IsEOS() {
			return nil, ErrEOS
		}
		return nil, ErrNoSample
	}
	buffer := sample.GetBuffer()
	if buffer == nil {
		return nil, ErrNoSample
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	frame, err := PackRows(data, width, height)
	buffer.Unmap()
	return frame, err
}

// waitBus waits up to timeout for end-of-stream or an error on the bus.
func waitBus(pipeline *gst.Pipeline, timeout time.Duration) error {
	bus := pipeline.GetPipelineBus()
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("gstreamer: no end-of-stream within %s", timeout)
		}
		msg := bus.TimedPop(remaining)
		if msg == nil {
			continue
		}
		switch msg.Type() {
		case gst.MessageEOS:
			return nil
		case gst.MessageError:
			gerr := msg.ParseError()
			return fmt.Errorf("gstreamer: pipeline error: %s (%s)", gerr.Error(), gerr.DebugString())
		}
	}
}

// busError returns the first pending error message on the bus, if any.
func busError(pipeline *gst.Pipeline) error {
	bus := pipeline.GetPipelineBus()
	for {
		msg := bus.TimedPop(0)
		if msg == nil {
			return nil
		}
		if msg.Type() == gst.MessageError {
			gerr := msg.ParseError()
			return fmt.Errorf("gstreamer: pipeline error: %s (%s)", gerr.Error(), gerr.DebugString())
		}
	}
}
