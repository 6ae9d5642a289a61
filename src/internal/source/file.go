// FILE: logship/src/internal/source/file.go
package source

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hpcloud/tail"
	"github.com/lixenwraith/log"
)

// FileSource follows a single file, surviving rotation by reopening it.
type FileSource struct {
	path      string
	tag       string
	fromEnd   bool
	sink      Sink
	logger    *log.Logger
	tailer    *tail.Tail
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	startTime time.Time

	totalEntries  atomic.Uint64
	readErrors    atomic.Uint64
	lastEntryTime atomic.Value // time.Time
}

// NewFileSource creates a follower for path. With fromEnd only lines
// written after Start are read.
func NewFileSource(path, tag string, fromEnd bool, sink Sink, logger *log.Logger) (*FileSource, error) {
	if path == "" {
		return nil, fmt.Errorf("file source requires a path")
	}
	if tag == "" {
		tag = "file"
	}

	s := &FileSource{
		path:    path,
		tag:     tag,
		fromEnd: fromEnd,
		sink:    sink,
		logger:  logger,
		done:    make(chan struct{}),
	}
	s.lastEntryTime.Store(time.Time{})
	return s, nil
}

func (s *FileSource) Start(ctx context.Context) error {
	var location *tail.SeekInfo
	if s.fromEnd {
		location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(s.path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Poll:      true,
		Location:  location,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to follow %s: %w", s.path, err)
	}

	s.tailer = t
	s.startTime = time.Now()

	s.wg.Add(1)
	go s.readLoop(ctx)

	s.logger.Info("msg", "File source started",
		"component", "file_source",
		"path", s.path,
		"from_end", s.fromEnd)
	return nil
}

func (s *FileSource) Done() <-chan struct{} {
	return s.done
}

func (s *FileSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.tailer != nil {
			_ = s.tailer.Stop()
			s.tailer.Cleanup()
		}
	})
	s.wg.Wait()

	s.logger.Info("msg", "File source stopped",
		"component", "file_source",
		"path", s.path,
		"entries", s.totalEntries.Load())
}

func (s *FileSource) GetStats() SourceStats {
	lastEntry, _ := s.lastEntryTime.Load().(time.Time)

	return SourceStats{
		Type:          "file",
		TotalEntries:  s.totalEntries.Load(),
		StartTime:     s.startTime,
		LastEntryTime: lastEntry,
		Details: map[string]any{
			"path":        s.path,
			"read_errors": s.readErrors.Load(),
		},
	}
}

func (s *FileSource) readLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case line, ok := <-s.tailer.Lines:
			if !ok {
				return
			}
			if line == nil {
				continue
			}
			if line.Err != nil {
				s.readErrors.Add(1)
				s.logger.Warn("msg", "Error reading followed file",
					"component", "file_source",
					"path", s.path,
					"error", line.Err)
				continue
			}
			if line.Text == "" {
				continue
			}

			entry := lineEntry(line.Text, s.tag)
			s.totalEntries.Add(1)
			s.lastEntryTime.Store(entry.Time)
			s.sink.WriteEntry(entry)

		case <-ctx.Done():
			return
		case <-s.done:
			return
		}
	}
}
