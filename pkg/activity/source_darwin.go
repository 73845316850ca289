//go:build darwin

package activity

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"

	"github.com/pion/logging"
)

// logStreamSource maps AVCaptureSession start/stop lines from the unified
// log to global activity events.
type logStreamSource struct {
	logger logging.LeveledLogger
}

func newSource(cfg Config) (Source, error) {
	return &logStreamSource{logger: cfg.Logger}, nil
}

func (s *logStreamSource) Watch(ctx context.Context, events chan<- Event) error {
	s.logger.Info("starting `log` process to listen for video device events")

	cmd := exec.CommandContext(ctx, "log", "stream", "--predicate", logStreamPredicate)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("activity: pipe `log` output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("activity: start `log` process: %w", err)
	}
	s.logger.Info("listening for video device events")

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		s.logger.Debugf("log line: %s", line)

		kind, ok := classifyLogLine(line)
		if !ok {
			continue
		}
		if kind == GlobalActive {
			s.logger.Info("detected that a video device has been turned on")
		} else {
			s.logger.Info("detected that a video device has been turned off")
		}
		if !send(ctx, events, Event{Kind: kind}) {
			break
		}
	}

	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return nil
	}
	// The stream never ends on its own; the process exiting means webcam
	// events can no longer be observed.
	if waitErr != nil {
		return fmt.Errorf("activity: `log` process exited unexpectedly: %w", waitErr)
	}
	return fmt.Errorf("activity: `log` process exited unexpectedly")
}
