package telemetry

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("go.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")
var liveObjectsGauge, _ = meter.Int64Gauge("live_objects")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// RecordPerfStats takes one snapshot of process stats, records it on the
// global meter and logs it at debug level.
func RecordPerfStats(ctx context.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	allocatedMb := int64(memStats.Alloc / 1_000_000)
	liveObjects := int64(memStats.Mallocs) - int64(memStats.Frees)
	goroutines := int64(runtime.NumGoroutine())

	memoryGauge.Record(ctx, allocatedMb)
	liveObjectsGauge.Record(ctx, liveObjects)
	goroutineGauge.Record(ctx, goroutines)

	cpuUsage, err := cpu.PercentWithContext(ctx, 0, false)
	if err == nil && len(cpuUsage) > 0 {
		cpuGauge.Record(ctx, cpuUsage[0])
	} else if err != nil {
		slog.DebugContext(ctx, "failed to read cpu usage", "err", err)
	}

	slog.DebugContext(
		ctx, "perf stats",
		"allocated_mb", allocatedMb,
		"live_objects", liveObjects,
		"goroutines", goroutines,
	)
}
