// Package logs locates and streams component log files, which live at
// <folder>/<type>.general.log.
package logs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nxadm/tail"
)

// Service resolves and reads logs under one folder.
type Service struct {
	folder string
}

func New(folder string) Service {
	return Service{folder: folder}
}

// Path returns the log file path for a component type.
func (s Service) Path(typ string) string {
	return filepath.Join(s.folder, typ+".general.log")
}

// ReadLast returns up to n trailing lines of the log.
func (s Service) ReadLast(typ string, n int) ([]string, error) {
	b, err := os.ReadFile(s.Path(typ))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// Follow streams log lines to sink until ctx is cancelled. The file must
// already exist.
func (s Service) Follow(ctx context.Context, typ string, sink func(line string)) error {
	path := s.Path(typ)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("log file not found: %s", path)
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = t.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return line.Err
			}
			sink(line.Text)
		}
	}
}
