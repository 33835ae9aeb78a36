package unisql

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/francois95140/unisql/engine/executor"
)

// maxLineSize bounds one batch line; bulk payloads can be large
const maxLineSize = 16 * 1024 * 1024

// ErrMissingCommand is returned for a batch line holding only a backend tag
var ErrMissingCommand = errors.New("missing command after backend tag")

// BatchResult is the outcome of one batch line. Exactly one of Result and
// Err is set.
type BatchResult struct {
	Line    int
	Backend string
	Command string
	Result  *executor.Result
	Err     error
}

// ExecuteBatch runs every "<backend> <command>" line of r in order. Blank
// lines and lines starting with # are skipped. A failed line does not stop
// the batch.
func (c *Client) ExecuteBatch(ctx context.Context, r io.Reader) []BatchResult {
	var results []BatchResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tag, command := splitBatchLine(line)
		br := BatchResult{Line: lineNo, Backend: tag, Command: command}
		if command == "" {
			br.Err = &Error{Kind: KindParse, Err: ErrMissingCommand}
		} else {
			br.Result, br.Err = c.Execute(ctx, tag, command)
		}
		results = append(results, br)
	}

	if err := scanner.Err(); err != nil {
		results = append(results, BatchResult{Line: lineNo + 1, Err: &Error{Kind: KindInput, Err: fmt.Errorf("reading batch: %w", err)}})
	}
	return results
}

// splitBatchLine splits at the first run of whitespace
func splitBatchLine(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}
