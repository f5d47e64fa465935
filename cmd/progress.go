package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// progressPrinter renders a single in-place status line for batch
// assessments. Writes go to the terminal directly so JSON output on stdout
// stays clean when redirected.
type progressPrinter struct {
	total    int
	name     string
	mu       sync.Mutex
	assessed int
	failed   int
	elapsed  float64
	updates  chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newProgressPrinter(total int, name string) *progressPrinter {
	if total <= 0 {
		total = 1
	}
	return &progressPrinter{
		total:   total,
		name:    name,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (p *progressPrinter) Start() {
	go p.loop()
}

// Increment records one finished assessment and nudges the render loop.
func (p *progressPrinter) Increment(success bool, duration float64) {
	p.mu.Lock()
	if success {
		p.assessed++
	} else {
		p.failed++
	}
	p.elapsed += duration
	p.mu.Unlock()

	select {
	case p.updates <- struct{}{}:
	default:
	}
}

// Stop halts the render loop and prints the final line.
func (p *progressPrinter) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", 80))
	p.render()
	fmt.Fprintln(os.Stderr)
}

func (p *progressPrinter) loop() {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.updates:
			p.render()
		case <-ticker.C:
			p.render()
		case <-p.done:
			return
		}
	}
}

func (p *progressPrinter) render() {
	p.mu.Lock()
	assessed := p.assessed
	failed := p.failed
	elapsed := p.elapsed
	p.mu.Unlock()

	completed := assessed + failed
	if completed > p.total {
		p.total = completed
	}

	avg := 0.0
	if completed > 0 {
		avg = elapsed / float64(completed)
	}

	fmt.Fprintf(os.Stderr, "\r[%s] %d/%d domains  assessed:%d  rejected:%d  avg:%.2fs",
		p.name, completed, p.total, assessed, failed, avg)
}
