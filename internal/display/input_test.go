package display

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestLineInputReadsDecisions(t *testing.T) {
	var out bytes.Buffer
	input := NewLineInput(strings.NewReader("1\n2\n"), &out, quietLogger())
	defer input.Close()

	d, err := input.NextDecision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Hit, d)

	d, err = input.NextDecision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Hold, d)

	_, err = input.NextDecision(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineInputRepromptsOnMalformedInput(t *testing.T) {
	var out bytes.Buffer
	input := NewLineInput(strings.NewReader("x\n\n3\n  2  \n"), &out, quietLogger())
	defer input.Close()

	d, err := input.NextDecision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Hold, d)

	// One prompt per line read, three rejections
	assert.Equal(t, 4, strings.Count(out.String(), "1) Hit  2) Hold"))
	assert.Equal(t, 3, strings.Count(out.String(), "Please enter 1 to hit or 2 to hold."))
}

func TestLineInputHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	input := NewLineInput(r, io.Discard, quietLogger())
	defer input.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := input.NextDecision(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLineInputClose(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	input := NewLineInput(r, io.Discard, quietLogger())
	require.NoError(t, input.Close())
	require.NoError(t, input.Close())

	_, err := input.NextDecision(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineInputRejectsOverlongLine(t *testing.T) {
	var out bytes.Buffer
	junk := strings.Repeat("x", 70*1024)
	input := NewLineInput(strings.NewReader(junk+"\n1\n"), &out, quietLogger())
	defer input.Close()

	d, err := input.NextDecision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Hit, d)
	assert.Equal(t, 1, strings.Count(out.String(), "Please enter 1 to hit or 2 to hold."))
	assert.NotContains(t, out.String(), junk)
}

func TestLineInputOverlongLineWithValidPrefix(t *testing.T) {
	input := NewLineInput(strings.NewReader("1"+strings.Repeat(" ", 4096)+"x\n2\n"), io.Discard, quietLogger())
	defer input.Close()

	d, err := input.NextDecision(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Hold, d)
}
