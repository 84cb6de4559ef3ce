package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/baus/internal/config"
	"github.com/roach88/baus/internal/score"
)

// UpdateFirst records a use of the first line and returns it as the only
// output line. Empty input is valid (the user dismissed the picker): nothing
// is changed and nil is returned.
//
// One trailing "\n" or "\r\n" is trimmed from the line before it is used as
// a key. With config.ValueCount the score becomes the stored score plus one;
// with config.ValueTimestamp it becomes the current Unix time in seconds.
func UpdateFirst(lines []string, s score.Scores, kind config.ValueKind, clock Clock) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	line := trimTerminator(lines[0])

	var value int64
	switch kind {
	case config.ValueCount:
		value = s.Get(line) + 1
	case config.ValueTimestamp:
		secs, err := unixSeconds(clock.Now())
		if err != nil {
			return nil, err
		}
		value = secs
	default:
		return nil, fmt.Errorf("unknown value kind %q", kind)
	}

	s.Set(line, value)
	return []string{line}, nil
}

func trimTerminator(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2]
	}
	return strings.TrimSuffix(line, "\n")
}
