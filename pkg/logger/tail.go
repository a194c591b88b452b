package logger

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// DefaultTailLines lines를 지정하지 않았을 때 보여줄 줄 수
const DefaultTailLines = 100

// Tail 로그 파일의 마지막 lines줄을 최신순으로 emit한 뒤, 이후 추가되는 줄을
// ctx가 끝날 때까지 따라갑니다. 새로 들어온 묶음도 최신순으로 전달됩니다.
// 개행으로 끝나지 않은 줄은 완성될 때까지 보류합니다.
func Tail(ctx context.Context, path string, lines int, emit func(line string) error) error {
	if lines <= 0 {
		lines = DefaultTailLines
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// 초기 읽기와 감시 시작 사이에 쓰인 줄을 놓치지 않도록 먼저 감시합니다
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return err
	}

	reader := bufio.NewReader(file)
	var pending string

	backlog, err := readLines(reader, &pending)
	if err != nil {
		return err
	}
	if len(backlog) > lines {
		backlog = backlog[len(backlog)-lines:]
	}
	if err := emitNewestFirst(backlog, emit); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			fresh, err := readLines(reader, &pending)
			if err != nil {
				return err
			}
			if err := emitNewestFirst(fresh, emit); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

// readLines EOF까지 완성된 줄을 읽습니다. 미완성 조각은 pending에 남깁니다.
func readLines(reader *bufio.Reader, pending *string) ([]string, error) {
	var out []string
	for {
		chunk, err := reader.ReadString('\n')
		*pending += chunk
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, strings.TrimRight(*pending, "\r\n"))
		*pending = ""
	}
}

func emitNewestFirst(lines []string, emit func(string) error) error {
	for i := len(lines) - 1; i >= 0; i-- {
		if err := emit(lines[i]); err != nil {
			return err
		}
	}
	return nil
}
