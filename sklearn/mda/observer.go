package mda

import (
	"github.com/YuminosukeSato/mda/pkg/log"
)

// Checkpoint identifies a stage of training reported to an Observer.
type Checkpoint int

const (
	// TrainingStarted is reported once all inputs have been validated.
	TrainingStarted Checkpoint = iota
	// BiasAppended is reported after the row of ones has been added.
	BiasAppended
	// ScatterComputed is reported after S = X·Xᵀ has been formed.
	ScatterComputed
	// CorruptionApplied is reported after the expected scatter Q is built.
	CorruptionApplied
	// TargetConstructed is reported after the regression target P is built.
	TargetConstructed
	// SolvingWeights is reported right before the least-squares solve.
	SolvingWeights
	// TrainingFinished is reported after the new weights are stored.
	TrainingFinished
)

var checkpointNames = [...]string{
	TrainingStarted:   "training started",
	BiasAppended:      "bias matrix constructed",
	ScatterComputed:   "scatter matrix computed",
	CorruptionApplied: "corruption vector applied",
	TargetConstructed: "regression target (P) constructed",
	SolvingWeights:    "solving for weights",
	TrainingFinished:  "training finished",
}

func (c Checkpoint) String() string {
	if c < 0 || int(c) >= len(checkpointNames) {
		return "unknown checkpoint"
	}
	return checkpointNames[c]
}

// Checkpoints returns every checkpoint in the order training reports them.
func Checkpoints() []Checkpoint {
	out := make([]Checkpoint, len(checkpointNames))
	for i := range out {
		out[i] = Checkpoint(i)
	}
	return out
}

// Observer receives progress notifications during training. It never
// influences the result.
type Observer interface {
	Observe(c Checkpoint)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(c Checkpoint)

// Observe calls f(c).
func (f ObserverFunc) Observe(c Checkpoint) { f(c) }

// NopObserver discards every notification.
type NopObserver struct{}

// Observe does nothing.
func (NopObserver) Observe(Checkpoint) {}

// LogObserver writes each checkpoint to a logger at debug level.
type LogObserver struct {
	logger log.Logger
}

// NewLogObserver creates a LogObserver. A nil logger falls back to the
// package logger named "mda".
func NewLogObserver(logger log.Logger) *LogObserver {
	if logger == nil {
		logger = log.GetLoggerWithName("mda")
	}
	return &LogObserver{logger: logger}
}

// Observe logs c.
func (o *LogObserver) Observe(c Checkpoint) {
	o.logger.Debug("mDA progress", log.CheckpointKey, c.String())
}
