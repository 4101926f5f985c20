package cmd

import (
	"bufio"
	"context"
	"io"
)

// inputLine is one line read from the terminal, or the error that ended
// input (io.EOF at end of input).
type inputLine struct {
	text string
	err  error
}

// readLines scans in on its own goroutine so callers can stop waiting when
// ctx is done. The channel is closed after the final error line.
func readLines(ctx context.Context, in io.Reader) <-chan inputLine {
	lines := make(chan inputLine)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- inputLine{text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}

		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case lines <- inputLine{err: err}:
		case <-ctx.Done():
		}
	}()

	return lines
}

// nextLine waits for the next line or for ctx to be done.
func nextLine(ctx context.Context, lines <-chan inputLine) inputLine {
	select {
	case <-ctx.Done():
		return inputLine{err: ctx.Err()}
	case line, ok := <-lines:
		if !ok {
			return inputLine{err: io.EOF}
		}
		return line
	}
}
