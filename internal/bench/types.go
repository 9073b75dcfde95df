// internal/bench/types.go
package bench

// Measurement holds the aggregated latency samples for one benchmarked
// command, compared against a fixed target in seconds.
type Measurement struct {
	Command     string    `json:"command"`
	Samples     []float64 `json:"samples"`
	AvgTime     float64   `json:"avg_time"`
	MinTime     float64   `json:"min_time"`
	MaxTime     float64   `json:"max_time"`
	MedianTime  float64   `json:"median_time"`
	Success     bool      `json:"success"`
	OutputSize  int       `json:"output_size"`
	Target      float64   `json:"target"`
	MeetsTarget bool      `json:"meets_target"`
}

// SizeMeasurement records the target binary's on-disk size against a
// megabyte budget.
type SizeMeasurement struct {
	SizeBytes   int64   `json:"size_bytes"`
	SizeMB      float64 `json:"size_mb"`
	TargetMB    float64 `json:"target_mb"`
	MeetsTarget bool    `json:"meets_target"`
}

// StartupComparison contrasts one cold invocation against warm repeats.
// Normalized is false when no cache purge ran or the purge failed, which
// makes the cold number unreliable.
type StartupComparison struct {
	ColdStart    float64 `json:"cold_start"`
	WarmStartAvg float64 `json:"warm_start_avg"`
	Improvement  float64 `json:"improvement"`
	Normalized   bool    `json:"normalized"`
}

// newMeasurement derives the aggregate statistics for a set of samples.
func newMeasurement(command string, samples []float64, success bool, outputSize int, target float64) Measurement {
	return Measurement{
		Command:     command,
		Samples:     samples,
		AvgTime:     mean(samples),
		MinTime:     minOf(samples),
		MaxTime:     maxOf(samples),
		MedianTime:  median(samples),
		Success:     success,
		OutputSize:  outputSize,
		Target:      target,
		MeetsTarget: len(samples) > 0 && median(samples) < target,
	}
}

// newSizeMeasurement derives the megabyte view of a byte count.
func newSizeMeasurement(sizeBytes int64, targetMB float64) SizeMeasurement {
	sizeMB := float64(sizeBytes) / (1024 * 1024)
	return SizeMeasurement{
		SizeBytes:   sizeBytes,
		SizeMB:      sizeMB,
		TargetMB:    targetMB,
		MeetsTarget: sizeMB < targetMB,
	}
}
