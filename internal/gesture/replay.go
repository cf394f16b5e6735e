package gesture

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ReplayStep is one scripted recognizer emission, loaded from YAML. Hand is
// the tracked landmark in normalized frame coordinates; omit it for a
// no-hand sample.
type ReplayStep struct {
	Label      string  `yaml:"label"`
	Confidence float32 `yaml:"confidence"`
	DelayMS    int     `yaml:"delay_ms"`
	Hand       *struct {
		X float32 `yaml:"x"`
		Y float32 `yaml:"y"`
	} `yaml:"hand"`
}

const defaultReplayDelay = 100 * time.Millisecond

// Replay is a Recognizer that plays a scripted sample sequence from a file,
// looping forever. It stands in for the camera-based recognizer on machines
// without one and drives demos deterministically.
type Replay struct {
	steps []ReplayStep
	idx   int
}

// OpenReplay loads a replay script. A missing or invalid file is a terminal
// acquisition failure, reported through ErrUnavailable like a denied camera.
func OpenReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var steps []ReplayStep
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: %s: empty replay script", ErrUnavailable, path)
	}
	return &Replay{steps: steps}, nil
}

// Next waits the step's delay and returns its sample, looping at the end of
// the script.
func (r *Replay) Next(ctx context.Context) (Sample, error) {
	step := r.steps[r.idx%len(r.steps)]
	r.idx++

	delay := defaultReplayDelay
	if step.DelayMS > 0 {
		delay = time.Duration(step.DelayMS) * time.Millisecond
	}
	select {
	case <-ctx.Done():
		return Sample{}, ctx.Err()
	case <-time.After(delay):
	}

	s := Sample{Label: step.Label, Confidence: step.Confidence}
	if step.Hand != nil {
		s.Landmarks = []Landmark{{X: step.Hand.X, Y: step.Hand.Y}}
	}
	return s, nil
}

// Close is a no-op; a replay holds no camera stream.
func (r *Replay) Close() error {
	return nil
}

// unavailable is a Recognizer whose Next always fails terminally. Used when
// no recognizer is configured so the gesture subsystem degrades the same way
// as a denied camera permission.
type unavailable struct {
	reason string
}

// Unavailable returns a Recognizer that reports the given reason through
// ErrUnavailable on first use.
func Unavailable(reason string) Recognizer {
	return unavailable{reason: reason}
}

func (u unavailable) Next(context.Context) (Sample, error) {
	return Sample{}, fmt.Errorf("%w: %s", ErrUnavailable, u.reason)
}

func (u unavailable) Close() error {
	return nil
}
