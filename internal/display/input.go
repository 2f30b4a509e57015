package display

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// MenuPrompt is shown before every decision
const MenuPrompt = "1) Hit  2) Hold > "

// maxLineLength bounds how much of one input line is kept. Longer lines are
// read to the newline and rejected as malformed.
const maxLineLength = 1024

type inputLine struct {
	text    string
	tooLong bool
}

// LineInput reads decisions from a line oriented reader such as stdin. Lines
// are scanned on a background goroutine so NextDecision can honour ctx.
type LineInput struct {
	out    io.Writer
	logger *log.Logger

	lines chan inputLine
	errc  chan error
	done  chan struct{}
	start sync.Once
	stop  sync.Once
	in    io.Reader
}

// NewLineInput creates a decision source reading from in and prompting on out
func NewLineInput(in io.Reader, out io.Writer, logger *log.Logger) *LineInput {
	return &LineInput{
		in:     in,
		out:    out,
		logger: logger.WithPrefix("input"),
		lines:  make(chan inputLine),
		errc:   make(chan error, 1),
		done:   make(chan struct{}),
	}
}

func (l *LineInput) scan() {
	defer close(l.lines)
	reader := bufio.NewReader(l.in)
	for {
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.errc <- err
			}
			return
		}
		select {
		case l.lines <- line:
		case <-l.done:
			return
		}
	}
}

// readLine reads up to the next newline without buffering more than
// maxLineLength bytes of it
func readLine(r *bufio.Reader) (inputLine, error) {
	var line inputLine
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return inputLine{}, err
		}
		if !line.tooLong {
			if len(buf)+len(chunk) > maxLineLength {
				line.tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			line.text = string(buf)
			return line, nil
		}
	}
}

// NextDecision implements game.DecisionSource. Malformed lines are reported
// and the prompt is shown again until a valid choice arrives.
func (l *LineInput) NextDecision(ctx context.Context) (game.Decision, error) {
	l.start.Do(func() { go l.scan() })

	for {
		fmt.Fprint(l.out, PromptStyle.Render(MenuPrompt))

		var line inputLine
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-l.done:
			return 0, io.EOF
		case next, ok := <-l.lines:
			if !ok {
				fmt.Fprintln(l.out)
				select {
				case err := <-l.errc:
					return 0, err
				default:
					return 0, io.EOF
				}
			}
			line = next
		}

		if line.tooLong {
			l.logger.Debug("Rejected input", "error", "line too long")
			fmt.Fprintln(l.out, ErrorStyle.Render("Please enter 1 to hit or 2 to hold."))
			continue
		}

		decision, err := game.ParseDecision(line.text)
		if errors.Is(err, game.ErrMalformedDecision) {
			l.logger.Debug("Rejected input", "line", line.text, "error", err)
			fmt.Fprintln(l.out, ErrorStyle.Render("Please enter 1 to hit or 2 to hold."))
			continue
		}
		if err != nil {
			return 0, err
		}

		l.logger.Debug("Decision read", "decision", decision)
		return decision, nil
	}
}

// Close stops the scanner goroutine; later calls to NextDecision return io.EOF
func (l *LineInput) Close() error {
	l.stop.Do(func() { close(l.done) })
	return nil
}
