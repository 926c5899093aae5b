package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// spinnerFrames is the animation cycle drawn while a long operation runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the delay between animation frames.
const spinnerInterval = 80 * time.Millisecond

// Spinner is a terminal progress indicator. It draws on stderr so command
// output on stdout stays pipeable, and it winds down on its own when the
// parent context ends.
type Spinner struct {
	message string
	parent  context.Context
	quit    chan struct{}
	ran     chan struct{}
	once    sync.Once
	started bool
}

// newSpinner creates a spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		message: message,
		parent:  ctx,
		quit:    make(chan struct{}),
		ran:     make(chan struct{}),
	}
}

// Start launches the animation goroutine. Callers must eventually call one
// of the Stop variants so the spinner line gets cleared.
func (s *Spinner) Start() {
	s.started = true
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.ran)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := spinnerFrames[i%len(spinnerFrames)]
		fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))

		select {
		case <-s.parent.Done():
			s.eraseLine()
			return
		case <-s.quit:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation and clears the spinner line. Calling it more
// than once is safe.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	if s.started {
		<-s.ran
	}
	s.eraseLine()
}

func (s *Spinner) eraseLine() {
	width := utf8.RuneCountInString(s.message) + 2
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", width))
}

// StopWithSuccess stops the spinner and prints a success line in its place.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended the spinner rather
// than an explicit Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
