// Command push streams values from a source into a terminal viewer.
//
// Usage:
//
//	push -glob '**/*.go' [-root DIR]   stream file paths matching a pattern
//	push -md FILE                      stream a markdown file's blocks
//	push -sse                          stream server-sent events from stdin
//	push                               stream stdin lines
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/push"
	bt "github.com/fwojciec/push/bubbletea"
	pushfs "github.com/fwojciec/push/fs"
	"github.com/fwojciec/push/markdown"
	"github.com/fwojciec/push/sse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "push: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		globPat  = flag.String("glob", "", "Stream file paths matching a doublestar pattern")
		globRoot = flag.String("root", ".", "Base directory for -glob")
		mdPath   = flag.String("md", "", "Stream a markdown file's top-level blocks")
		sseMode  = flag.Bool("sse", false, "Stream server-sent events read from stdin")
	)
	flag.Parse()

	src, title, err := buildSource(*globPat, *globRoot, *mdPath, *sseMode)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(bt.NewViewer(title), tea.WithAltScreen())
	bt.Forward(ctx, src, p.Send)

	m, err := p.Run()
	if err != nil {
		return err
	}
	if v, ok := m.(bt.Viewer); ok && v.Err() != nil {
		return v.Err()
	}
	return nil
}

func buildSource(globPat, globRoot, mdPath string, sseMode bool) (push.AsyncStream[string], string, error) {
	switch {
	case globPat != "":
		return push.Async(pushfs.Glob(os.DirFS(globRoot), globPat)), "glob " + globPat, nil
	case mdPath != "":
		src, err := markdownSource(mdPath)
		return src, "markdown " + mdPath, err
	case sseMode:
		return sseSource(os.Stdin), "sse <stdin>", nil
	default:
		return push.Async(push.FromSeq2(lines(os.Stdin))), "<stdin>", nil
	}
}

func markdownSource(path string) (push.AsyncStream[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	blocks := markdown.Blocks(data)
	return push.Async(push.Emitter(func(e *push.Emit[string]) (any, error) {
		return push.Each(blocks, func(b markdown.Block) bool {
			e.Yield(renderBlock(b))
			return true
		})
	})), nil
}

func sseSource(r io.Reader) push.AsyncStream[string] {
	events := sse.Events(r)
	return push.AsyncEmitter(func(e *push.Emit[string]) (any, error) {
		return push.Each(events, func(ev sse.Event) bool {
			if ev.Type != "" {
				e.Yield(ev.Type + ": " + ev.Data)
			} else {
				e.Yield(ev.Data)
			}
			return true
		})
	})
}

func renderBlock(b markdown.Block) string {
	head := b.Kind
	if b.Level > 0 {
		head = fmt.Sprintf("%s(%d)", b.Kind, b.Level)
	}
	text := b.Text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + " ..."
	}
	return head + " | " + text
}

func lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}
