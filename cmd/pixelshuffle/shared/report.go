package shared

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lox/pixelshuffle/internal/batch"
)

// PrintSeed announces the seed in use. It is printed for every scramble so
// the image can be restored even if its metadata is lost.
func PrintSeed(w io.Writer, s Styles, seed int64) {
	fmt.Fprintf(w, "Using seed: %s\n", s.Seed.Render(strconv.FormatInt(seed, 10)))
}

// PrintOutcomes writes one line per input followed by a summary.
func PrintOutcomes(w io.Writer, s Styles, title string, outcomes []batch.Outcome) {
	fmt.Fprintln(w, s.Header.Render(title))
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "  %s %s: %v\n", s.Error.Render("✗"), s.Path.Render(o.Input), o.Err)
			continue
		}
		fmt.Fprintf(w, "  %s %s → %s %s\n",
			s.Success.Render("✓"),
			s.Path.Render(o.Input),
			s.Path.Render(o.Result.Output),
			s.Info.Render(fmt.Sprintf("(%dx%d, seed %d, %s)",
				o.Result.Width, o.Result.Height, o.Result.Seed, o.Duration.Round(time.Millisecond))))
	}

	failed := batch.Failed(outcomes)
	summary := fmt.Sprintf("%d processed, %d failed", len(outcomes)-failed, failed)
	if failed > 0 {
		fmt.Fprintln(w, s.Error.Render(summary))
	} else {
		fmt.Fprintln(w, s.Success.Render(summary))
	}
}
