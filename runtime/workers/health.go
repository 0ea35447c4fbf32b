package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

// HealthWorker periodically logs the process's own CPU and memory usage.
// Long-lived SSE connections make the process footprint worth watching;
// this keeps an operational trail without an external metrics stack.
type HealthWorker struct {
	log            *slog.Logger
	metricInterval time.Duration
}

func NewHealthWorker(log *slog.Logger, metricInterval time.Duration) *HealthWorker {
	return &HealthWorker{log: log, metricInterval: metricInterval}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cpu, err := p.CPUPercent()
			if err != nil {
				w.log.Error("Error while reading process cpu usage", "err", err)
				continue
			}
			mem, err := p.MemoryInfo()
			if err != nil {
				w.log.Error("Error while reading process memory usage", "err", err)
				continue
			}
			w.log.Info("Process health", "cpu_percent", cpu, "rss_bytes", mem.RSS)
		}
	}
}
