package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/semaforo/pkg/config"
	"github.com/aretw0/semaforo/pkg/domain"
)

// Questions and fallback notices shown by Collect.
const (
	QuestionState    = "Enter initial state of the signals in the order North South East West (Ex: RGRG): "
	QuestionRedGreen = "Enter time after which the red and green signals change (seconds): "
	QuestionYellow   = "Yellow signal time in seconds: "
	QuestionWindow   = "Enter start and end times (HH:MM HH:MM): "

	NoticeState    = "Invalid value or no value found for initial state, defaulting to all red (RRRR)."
	NoticeRedGreen = "Found invalid value, defaulting to 300 seconds"
	NoticeYellow   = "Either no value was entered or invalid value found, defaulting to 30 seconds"
	NoticeWindow   = "Could not recognise entered values for start and end time, defaulting to 9:00 and 9:30"
)

// Prompter collects the simulation parameters interactively.
// Answers that cannot be read fall back to the defaults with a notice;
// a closed input counts as an empty answer.
type Prompter struct {
	Reader *bufio.Reader
	Writer io.Writer

	lines     chan inputResult
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// NewPrompter creates a prompter for standard text IO.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Prompter{
		Reader: bufio.NewReader(r),
		Writer: w,
		done:   make(chan struct{}),
	}
}

// Close stops the background reader. Lines read afterwards are dropped.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

func (p *Prompter) initPump() {
	p.startOnce.Do(func() {
		p.lines = make(chan inputResult)
		go p.pump()
	})
}

// pump reads lines in the background so Ask can honour ctx cancellation.
// It exits on read errors or once Close is called.
func (p *Prompter) pump() {
	defer close(p.lines)
	for {
		text, err := p.Reader.ReadString('\n')
		if text != "" && !p.send(inputResult{text: text}) {
			return
		}
		if err != nil {
			if err != io.EOF {
				p.send(inputResult{err: err})
			}
			return
		}
	}
}

func (p *Prompter) send(res inputResult) bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.lines <- res:
		return true
	case <-p.done:
		return false
	}
}

// Ask writes question and returns the sanitized answer.
// Once the input is exhausted every answer is empty, and so is an answer
// SanitizeInput rejects.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	p.initPump()
	fmt.Fprint(p.Writer, question)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-p.lines:
		if !ok {
			fmt.Fprintln(p.Writer)
			return "", nil
		}
		if res.err != nil {
			return "", res.err
		}
		clean, err := SanitizeInput(strings.TrimSpace(res.text))
		if err != nil {
			return "", nil
		}
		return clean, nil
	}
}

// Collect asks for the initial state, both durations and the time window,
// then closes the prompter. Times are anchored to the date of day.
func (p *Prompter) Collect(ctx context.Context, day time.Time) (domain.Config, error) {
	defer p.Close()

	cfg := domain.Config{
		Signals:  domain.AllRed,
		RedGreen: domain.DefaultRedGreen,
		Yellow:   domain.DefaultYellow,
	}
	cfg.Start, cfg.End = config.DefaultWindow(day)

	answer, err := p.Ask(ctx, QuestionState)
	if err != nil {
		return cfg, err
	}
	if signals, err := domain.ParseSignals(answer); err == nil {
		cfg.Signals = signals
	} else {
		fmt.Fprintln(p.Writer, NoticeState)
	}

	answer, err = p.Ask(ctx, QuestionRedGreen)
	if err != nil {
		return cfg, err
	}
	if n, err := config.ParseSeconds(answer); err == nil {
		cfg.RedGreen = n
	} else {
		fmt.Fprintln(p.Writer, NoticeRedGreen)
	}

	answer, err = p.Ask(ctx, QuestionYellow)
	if err != nil {
		return cfg, err
	}
	if n, err := config.ParseSeconds(answer); err == nil {
		cfg.Yellow = n
	} else {
		fmt.Fprintln(p.Writer, NoticeYellow)
	}

	answer, err = p.Ask(ctx, QuestionWindow)
	if err != nil {
		return cfg, err
	}
	if start, end, err := config.ParseWindow(answer, day); err == nil {
		cfg.Start, cfg.End = start, end
	} else {
		fmt.Fprintln(p.Writer, NoticeWindow)
	}

	return cfg, nil
}
