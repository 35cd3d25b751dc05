package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/tiler/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status on a terminal until stopped or until
// its context ends.
type spinner struct {
	out  io.Writer
	ctx  context.Context
	stop context.CancelFunc
	done chan struct{}

	mu          sync.Mutex
	message     string
	width       int
	interrupted bool
}

// startSpinner draws message on out until Stop is called or ctx ends.
func startSpinner(ctx context.Context, out io.Writer, message string) *spinner {
	sctx, stop := context.WithCancel(ctx)
	s := &spinner{out: out, ctx: ctx, stop: stop, done: make(chan struct{}), message: message}
	go s.run(sctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	t := time.NewTicker(spinnerInterval)
	defer t.Stop()
	for frame := 0; ; frame++ {
		s.draw(spinnerFrames[frame%len(spinnerFrames)])
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.interrupted = s.ctx.Err() != nil
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
			s.mu.Unlock()
			return
		case <-t.C:
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	pad := max(0, s.width-len(s.message)-2)
	fmt.Fprintf(s.out, "\r%s%s", line, strings.Repeat(" ", pad))
	s.width = max(s.width, len(s.message)+2)
}

// SetMessage replaces the text shown next to the animation.
func (s *spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop clears the line and waits for the animation to end. Calling it more
// than once is harmless.
func (s *spinner) Stop() {
	s.stop()
	<-s.done
}

// Interrupted reports whether the parent context ended while the spinner
// was still running.
func (s *spinner) Interrupted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interrupted
}

// stageMessages follows the pipeline on a spinner.
type stageMessages struct{ s *spinner }

var stageVerbs = map[observability.Stage]string{
	observability.StageBuild:   "Building",
	observability.StageResolve: "Resolving",
	observability.StageRender:  "Rendering",
}

func (m stageMessages) StageStarted(_ context.Context, stage observability.Stage, layout string) {
	m.s.SetMessage(fmt.Sprintf("%s %s...", stageVerbs[stage], layout))
}

func (m stageMessages) StageFinished(context.Context, observability.StageEvent) {}
