package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/semaforo/pkg/domain"
)

var today = time.Date(2024, 5, 1, 14, 37, 12, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2024, 5, 1, h, m, 0, 0, time.UTC)
}

func TestPrompter_Collect_ValidAnswers(t *testing.T) {
	in := strings.NewReader("rggr\n120\n10\n10:15 10:45\n")
	out := &bytes.Buffer{}

	cfg, err := NewPrompter(in, out).Collect(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, "RGGR", cfg.Signals.String())
	assert.Equal(t, 120, cfg.RedGreen)
	assert.Equal(t, 10, cfg.Yellow)
	assert.Equal(t, at(10, 15), cfg.Start)
	assert.Equal(t, at(10, 45), cfg.End)

	text := out.String()
	assert.Contains(t, text, QuestionState)
	assert.Contains(t, text, QuestionRedGreen)
	assert.Contains(t, text, QuestionYellow)
	assert.Contains(t, text, QuestionWindow)
	assert.NotContains(t, text, "defaulting")
}

func TestPrompter_Collect_InvalidAnswersFallBack(t *testing.T) {
	in := strings.NewReader("RGB\n-5\nabc\nnoon\n")
	out := &bytes.Buffer{}

	cfg, err := NewPrompter(in, out).Collect(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, domain.AllRed, cfg.Signals)
	assert.Equal(t, domain.DefaultRedGreen, cfg.RedGreen)
	assert.Equal(t, domain.DefaultYellow, cfg.Yellow)
	assert.Equal(t, at(9, 0), cfg.Start)
	assert.Equal(t, at(9, 30), cfg.End)

	text := out.String()
	for _, notice := range []string{NoticeState, NoticeRedGreen, NoticeYellow, NoticeWindow} {
		assert.Contains(t, text, notice)
	}
}

func TestPrompter_Collect_ClosedInputUsesDefaults(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, err := NewPrompter(strings.NewReader(""), out).Collect(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, domain.AllRed, cfg.Signals)
	assert.Equal(t, 300, cfg.RedGreen)
	assert.Equal(t, 30, cfg.Yellow)
	assert.Equal(t, 30*time.Minute, cfg.Window())
	assert.Contains(t, out.String(), NoticeWindow)
}

func TestPrompter_Collect_LastLineWithoutNewline(t *testing.T) {
	in := strings.NewReader("GGRR\n60\n5\n9:00 9:10")

	cfg, err := NewPrompter(in, io.Discard).Collect(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, at(9, 10), cfg.End)
}

func TestPrompter_Ask_StripsControlSequences(t *testing.T) {
	in := strings.NewReader("\x1b[31mRRGG\x1b[0m\n")

	answer, err := NewPrompter(in, io.Discard).Ask(context.Background(), "? ")
	require.NoError(t, err)
	assert.Equal(t, "[31mRRGG[0m", answer)
}

func TestPrompter_Ask_Canceled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompter(r, io.Discard).Ask(ctx, "? ")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrompter_Collect_UnreadableAnswerFallsBack(t *testing.T) {
	in := strings.NewReader("\xffRGG\n120\n" + strings.Repeat("9", DefaultMaxInputSize+1) + "\n09:00 09:10\n")
	out := &bytes.Buffer{}

	cfg, err := NewPrompter(in, out).Collect(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, domain.AllRed, cfg.Signals)
	assert.Equal(t, 120, cfg.RedGreen)
	assert.Equal(t, domain.DefaultYellow, cfg.Yellow)
	assert.Equal(t, at(9, 10), cfg.End)

	text := out.String()
	assert.Contains(t, text, NoticeState)
	assert.Contains(t, text, NoticeYellow)
	assert.Equal(t, 1, strings.Count(text, QuestionState))
	assert.Equal(t, 1, strings.Count(text, QuestionYellow))
}

func TestPrompter_CloseDropsLaterLines(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	p := NewPrompter(r, io.Discard)
	go func() {
		_, _ = io.WriteString(w, "RRGG\n")
	}()

	answer, err := p.Ask(context.Background(), "? ")
	require.NoError(t, err)
	assert.Equal(t, "RRGG", answer)

	p.Close()
	_, err = io.WriteString(w, "extra line nobody asks for\n")
	require.NoError(t, err)

	stopped := make(chan []inputResult)
	go func() {
		var late []inputResult
		for res := range p.lines {
			late = append(late, res)
		}
		stopped <- late
	}()
	select {
	case late := <-stopped:
		assert.Empty(t, late)
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Close")
	}
}
