package app

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// profiler appends per event timings as CSV rows.
type profiler struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	start  time.Time
	last   time.Time
	event  string
	now    func() time.Time
}

func newProfiler(path string, logger *log.Logger) *profiler {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		if logger != nil {
			logger.Printf("profiler disabled: %v", err)
		}
		return nil
	}
	if logger != nil {
		logger.Printf("profiling render timings to %s", path)
	}
	p := newProfilerWriter(f)
	p.closer = f
	return p
}

func newProfilerWriter(w io.Writer) *profiler {
	p := &profiler{out: w, now: time.Now}
	fmt.Fprintln(p.out, "timestamp,event,section,delta_ms")
	return p
}

func (p *profiler) begin(event string) {
	if p == nil {
		return
	}
	now := p.now()
	p.start = now
	p.last = now
	p.event = event
}

func (p *profiler) mark(section string) {
	if p == nil {
		return
	}
	now := p.now()
	delta := now.Sub(p.last)
	p.last = now
	p.write(section, delta)
}

func (p *profiler) end() {
	if p == nil {
		return
	}
	p.write("total", p.now().Sub(p.start))
}

func (p *profiler) Close() error {
	if p == nil || p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

func (p *profiler) write(section string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	timestamp := p.now().Format(time.RFC3339Nano)
	fmt.Fprintf(p.out, "%s,%s,%s,%.3f\n", timestamp, p.event, section, d.Seconds()*1000)
}
