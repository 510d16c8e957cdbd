// Package engine drives one analysis pass over an access-log stream.
package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tinytelemetry/loglens/internal/ingest"
	"github.com/tinytelemetry/loglens/internal/logparse"
	"github.com/tinytelemetry/loglens/internal/model"
)

// ErrSourceUnavailable marks the only fatal condition: the log source could
// not be opened at all. Content problems never abort a run.
var ErrSourceUnavailable = errors.New("log source unavailable")

// utf8Replacement substitutes invalid bytes so one bad sequence never
// drops a whole line, let alone the run.
const utf8Replacement = "�"

// Run reads the stream line by line, feeding each trimmed non-empty line
// through the parser into a fresh aggregator, and returns the final
// statistics once the stream is exhausted. Blank lines are skipped without
// counting. Lines are processed strictly in stream order, so the result is
// deterministic for a given input.
func Run(r io.Reader) *model.AggregateStats {
	agg := ingest.NewAggregator()
	reader := bufio.NewReader(r)

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			ingestLine(agg, line)
		}
		if err != nil {
			// Read errors mid-stream end the pass with whatever was
			// accumulated; only open failures are fatal.
			break
		}
	}
	return agg.Stats()
}

func ingestLine(agg *ingest.Aggregator, line string) {
	line = strings.ToValidUTF8(line, utf8Replacement)
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	agg.Ingest(logparse.ParseLine(line))
}

// RunFile opens path and runs a full pass over it. A file that is missing
// or unreadable yields ErrSourceUnavailable; a well-formed-but-empty file
// yields zero-valued statistics and no error.
func RunFile(path string) (*model.AggregateStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	return Run(f), nil
}
