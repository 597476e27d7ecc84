package prometheus

import (
	"runtime"
	"sync"
	"time"

	"github.com/tollgate-io/tollgate/pkg/metrics"
)

const defaultSampleInterval = 10 * time.Second

// runtimeSampler periodically records process-level runtime metrics into
// gauges owned by the provider's registry. It keeps sampling until Stop is
// called; Stop is idempotent.
type runtimeSampler struct {
	interval time.Duration

	goroutines   metrics.Gauge
	heapAlloc    metrics.Gauge
	heapSys      metrics.Gauge
	gcCycles     metrics.Gauge
	gcPauseTotal metrics.Gauge

	stopCh   chan struct{}
	stopOnce sync.Once
}

func newRuntimeSampler(p *Provider, interval time.Duration) (*runtimeSampler, error) {
	s := &runtimeSampler{
		interval: interval,
		stopCh:   make(chan struct{}),
	}

	var err error
	if s.goroutines, err = p.NewGauge(metrics.MetricOptions{
		Name: "go_goroutines",
		Help: "Number of goroutines that currently exist",
	}); err != nil {
		return nil, err
	}
	if s.heapAlloc, err = p.NewGauge(metrics.MetricOptions{
		Name: "go_memstats_heap_alloc_bytes",
		Help: "Number of heap bytes allocated and still in use",
	}); err != nil {
		return nil, err
	}
	if s.heapSys, err = p.NewGauge(metrics.MetricOptions{
		Name: "go_memstats_heap_sys_bytes",
		Help: "Number of heap bytes obtained from the system",
	}); err != nil {
		return nil, err
	}
	if s.gcCycles, err = p.NewGauge(metrics.MetricOptions{
		Name: "go_gc_cycles_total",
		Help: "Number of completed GC cycles",
	}); err != nil {
		return nil, err
	}
	if s.gcPauseTotal, err = p.NewGauge(metrics.MetricOptions{
		Name: "go_gc_pause_seconds_total",
		Help: "Total GC pause time in seconds",
	}); err != nil {
		return nil, err
	}

	go s.run()

	return s, nil
}

func (s *runtimeSampler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Sample once immediately so the gauges are populated before the
	// first tick elapses.
	s.sample()

	for {
		select {
		case <-ticker.C:
			s.sample()
		case <-s.stopCh:
			return
		}
	}
}

func (s *runtimeSampler) sample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	s.goroutines.Set(float64(runtime.NumGoroutine()))
	s.heapAlloc.Set(float64(ms.HeapAlloc))
	s.heapSys.Set(float64(ms.HeapSys))
	s.gcCycles.Set(float64(ms.NumGC))
	s.gcPauseTotal.Set(float64(ms.PauseTotalNs) / 1e9)
}

// Stop cancels the periodic collection. Safe to call more than once.
func (s *runtimeSampler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// running reports whether the sampler has not been stopped yet.
func (s *runtimeSampler) running() bool {
	select {
	case <-s.stopCh:
		return false
	default:
		return true
	}
}
