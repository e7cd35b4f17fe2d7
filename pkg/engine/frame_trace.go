package engine

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

const (
	frameTraceSamplesDefault   = 240
	defaultFrameTraceThreshold = 16667 * time.Microsecond
)

// FramePhaseTimings captures time spent in each frame phase (ms).
type FramePhaseTimings struct {
	BuildMs       float64 `json:"buildMs" yaml:"build_ms"`
	ResolveMs     float64 `json:"resolveMs" yaml:"resolve_ms"`
	DrawMs        float64 `json:"drawMs" yaml:"draw_ms"`
	BookkeepingMs float64 `json:"bookkeepingMs" yaml:"bookkeeping_ms"`
}

// FrameCounts captures per-frame workload indicators.
type FrameCounts struct {
	Elements     int `json:"elements" yaml:"elements"`
	Candidates   int `json:"candidates" yaml:"candidates"`
	Layers       int `json:"layers" yaml:"layers"`
	StateBuckets int `json:"stateBuckets" yaml:"state_buckets"`
	Pooled       int `json:"pooled" yaml:"pooled"`
}

// FrameSample is a single frame trace sample.
type FrameSample struct {
	Frame     uint64            `json:"frame" yaml:"frame"`
	Timestamp int64             `json:"ts" yaml:"ts"`
	FrameMs   float64           `json:"frameMs" yaml:"frame_ms"`
	Phases    FramePhaseTimings `json:"phases" yaml:"phases"`
	Counts    FrameCounts       `json:"counts" yaml:"counts"`
}

// FrameTimeline is a chronological view of the trace buffer.
type FrameTimeline struct {
	Samples       []FrameSample `json:"samples" yaml:"samples"`
	DroppedFrames int           `json:"droppedFrames" yaml:"dropped_frames"`
	ThresholdMs   float64       `json:"thresholdMs" yaml:"threshold_ms"`
}

// FrameTraceBuffer keeps the most recent frame samples. Once full, each new
// sample replaces the oldest. Frames slower than the threshold are counted as
// dropped over the buffer's whole lifetime, not just the retained window.
type FrameTraceBuffer struct {
	mu        sync.RWMutex
	samples   []FrameSample
	capacity  int
	oldest    int
	dropped   int
	threshold time.Duration
}

// NewFrameTraceBuffer creates a buffer holding capacity samples. Non-positive
// arguments select the defaults (240 samples, one 60Hz frame).
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = frameTraceSamplesDefault
	}
	if threshold <= 0 {
		threshold = defaultFrameTraceThreshold
	}
	return &FrameTraceBuffer{
		samples:   make([]FrameSample, 0, capacity),
		capacity:  capacity,
		threshold: threshold,
	}
}

func (b *FrameTraceBuffer) Capacity() int {
	return b.capacity
}

// Threshold is the frame duration above which a frame counts as dropped.
func (b *FrameTraceBuffer) Threshold() time.Duration {
	return b.threshold
}

// Add records the sample for a frame that took frameDuration.
func (b *FrameTraceBuffer) Add(sample FrameSample, frameDuration time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if frameDuration > b.threshold {
		b.dropped++
	}
	if len(b.samples) < b.capacity {
		b.samples = append(b.samples, sample)
		return
	}
	b.samples[b.oldest] = sample
	b.oldest = (b.oldest + 1) % b.capacity
}

// Snapshot returns the retained samples oldest first.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()
	tl := FrameTimeline{
		DroppedFrames: b.dropped,
		ThresholdMs:   durationToMillis(b.threshold),
	}
	if len(b.samples) == 0 {
		return tl
	}
	tl.Samples = make([]FrameSample, 0, len(b.samples))
	tl.Samples = append(tl.Samples, b.samples[b.oldest:]...)
	tl.Samples = append(tl.Samples, b.samples[:b.oldest]...)
	return tl
}

// Slowest returns up to n retained samples ordered by descending frame time.
// Equal times keep frame order.
func (b *FrameTraceBuffer) Slowest(n int) []FrameSample {
	samples := b.Snapshot().Samples
	slices.SortStableFunc(samples, func(a, c FrameSample) int {
		return cmp.Compare(c.FrameMs, a.FrameMs)
	})
	if n < len(samples) {
		samples = samples[:max(n, 0)]
	}
	return samples
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
