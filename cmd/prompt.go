package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/dblp"
	"bibcleaner/core/reconcile"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

// promptAttempts is how often a malformed answer is asked again before the original is kept.
const promptAttempts = 3

// errPromptAbandoned is returned by every Choose after a prompt was left unanswered
// because its context ended. The read of that prompt is still pending on the input.
var errPromptAbandoned = errors.New("prompt abandoned")

// promptChooser asks the user on the terminal which candidate to use.
type promptChooser struct {
	in  *bufio.Reader
	out io.Writer
	// abandoned is set once a read was left running after its context ended.
	abandoned error
}

func newPromptChooser(in io.Reader, out io.Writer) *promptChooser {
	return &promptChooser{in: bufio.NewReader(in), out: out}
}

// Choose shows the original and the candidates and reads an index.
// An empty answer keeps the original.
func (p *promptChooser) Choose(ctx context.Context, original *bibtex.Record, candidates []dblp.Pair) (reconcile.Choice, error) {
	if p.abandoned != nil {
		return reconcile.KeepOriginal(), p.abandoned
	}
	fmt.Fprintf(p.out, "\nDBLP returned %d matches for %s, please choose the best option.\n", len(candidates), original.Key)
	fmt.Fprintln(p.out, renderCandidates(original, candidates))

	for attempt := 0; attempt < promptAttempts; attempt++ {
		fmt.Fprint(p.out, "Which one should we use? Press ENTER to keep the original: ")
		line, err := p.readLine(ctx)
		if err != nil {
			return reconcile.KeepOriginal(), err
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			return reconcile.KeepOriginal(), nil
		}
		i, err := strconv.Atoi(answer)
		if err != nil || i < 0 || i >= len(candidates) {
			fmt.Fprintf(p.out, "Please enter a number between 0 and %d.\n", len(candidates)-1)
			continue
		}
		return reconcile.Pick(i), nil
	}
	fmt.Fprintln(p.out, "No valid answer, keeping the original.")
	return reconcile.KeepOriginal(), nil
}

// readLine reads one line and gives up when ctx ends. A read given up on keeps
// the input busy, so the chooser refuses further prompts afterwards.
func (p *promptChooser) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		p.abandoned = fmt.Errorf("%w: %w", errPromptAbandoned, ctx.Err())
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
			return "", r.err
		}
		return r.line, nil
	}
}

func renderCandidates(original *bibtex.Record, candidates []dblp.Pair) string {
	rows := [][]string{candidateRow("orig", original)}
	for i, c := range candidates {
		if !c.Resolved() {
			rows = append(rows, []string{strconv.Itoa(i), "(unreadable)", "", "", "", ""})
			continue
		}
		rows = append(rows, candidateRow(strconv.Itoa(i), c.Primary))
	}
	return renderTable(
		[]string{"#", "Key", "Title", "Authors", "Year", "Venue"},
		rows,
		[]columnAlignment{alignRight},
	)
}

func candidateRow(label string, r *bibtex.Record) []string {
	venue := r.Text("booktitle")
	if venue == "" {
		venue = r.Text("journal")
	}
	return []string{label, r.Key, r.Text("title"), r.Text("author"), r.Text("year"), venue}
}

// chooserFor returns the chooser for policy. The interactive chooser needs a
// terminal on stdin; without one the original is kept.
func chooserFor(policy string, in io.Reader, out io.Writer, log *zap.Logger) (reconcile.Chooser, error) {
	if policy != reconcile.PolicyInteractive {
		return reconcile.PolicyChooser(policy)
	}
	if f, ok := in.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		log.Warn("Stdin is not a terminal, ambiguous records keep their original entry")
		return reconcile.AlwaysOriginal(), nil
	}
	return newPromptChooser(in, out), nil
}
