//go:build linux

package activity

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/pion/logging"
	"golang.org/x/sys/unix"
)

const videoNodePrefix = "video"

// inotifySource reports OPEN and CLOSE events on the video device nodes
// under a single directory, normally /dev.
type inotifySource struct {
	watchDir string
	node     string // exact node name to match; empty means the video* prefix
	logger   logging.LeveledLogger
}

func newSource(cfg Config) (Source, error) {
	s := &inotifySource{watchDir: "/dev", logger: cfg.Logger}
	if cfg.VideoDevice != "" {
		s.watchDir = filepath.Dir(cfg.VideoDevice)
		s.node = filepath.Base(cfg.VideoDevice)
	}
	return s, nil
}

func (s *inotifySource) Watch(ctx context.Context, events chan<- Event) error {
	// Non-blocking so the reads below go through the runtime poller,
	// which lets a Close from the cancellation goroutine wake them.
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return fmt.Errorf("activity: inotify init: %w", err)
	}
	file := os.NewFile(uintptr(fd), "inotify")
	defer file.Close()

	// Watching the directory rather than individual nodes keeps the watch
	// valid while nodes are created and removed underneath it.
	if _, err := unix.InotifyAddWatch(fd, s.watchDir, unix.IN_OPEN|unix.IN_CLOSE); err != nil {
		return fmt.Errorf("activity: watch %s: %w", s.watchDir, err)
	}
	s.logger.Infof("watching %s for video device events", s.watchDir)

	go func() {
		<-ctx.Done()
		file.Close()
	}()

	buf := make([]byte, 4096)
	for {
		n, err := file.Read(buf)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("activity: read inotify events: %w", err)
		}

		for offset := 0; offset+unix.SizeofInotifyEvent <= n; {
			raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			nameEnd := offset + unix.SizeofInotifyEvent + int(raw.Len)
			if nameEnd > n {
				s.logger.Warnf("short inotify read, skipping %d trailing bytes", n-offset)
				break
			}
			name := strings.TrimRight(string(buf[offset+unix.SizeofInotifyEvent:nameEnd]), "\x00")
			offset = nameEnd

			if raw.Mask&unix.IN_Q_OVERFLOW != 0 {
				s.logger.Warn("inotify queue overflowed, some device events were dropped")
				continue
			}
			if !s.matches(name) {
				continue
			}

			node := filepath.Join(s.watchDir, name)
			switch {
			case raw.Mask&unix.IN_OPEN != 0:
				s.logger.Infof("video device opened: %s", name)
				if !send(ctx, events, Event{Kind: DeviceActivated, Device: node}) {
					return nil
				}
			case raw.Mask&unix.IN_CLOSE != 0:
				s.logger.Infof("video device closed: %s", name)
				if !send(ctx, events, Event{Kind: DeviceDeactivated, Device: node}) {
					return nil
				}
			}
		}
	}
}

func (s *inotifySource) matches(name string) bool {
	if s.node != "" {
		return name == s.node
	}
	return strings.HasPrefix(name, videoNodePrefix)
}
