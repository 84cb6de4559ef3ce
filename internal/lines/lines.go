// Package lines reads and writes newline-delimited text.
package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 indicates an input line that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Read consumes r fully and returns its lines with the "\n" or "\r\n"
// terminator removed. A final line without a terminator is kept; a trailing
// terminator does not produce an extra empty line. Lines have no length limit.
//
// A line that is not valid UTF-8 fails the whole read with ErrInvalidUTF8,
// since it could not be stored as a key without loss.
//
// With normalize set every line is converted to Unicode NFC so that
// composed and decomposed spellings share one score.
func Read(r io.Reader, normalize bool) ([]string, error) {
	br := bufio.NewReader(r)

	var out []string
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if line == "" {
			return out, nil
		}

		if strings.HasSuffix(line, "\n") {
			line = strings.TrimSuffix(line[:len(line)-1], "\r")
		}
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", n, ErrInvalidUTF8)
		}
		if normalize {
			line = norm.NFC.String(line)
		}
		out = append(out, line)

		if err != nil {
			return out, nil
		}
	}
}

// Write prints each line followed by "\n".
func Write(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
