package news

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownTimeRange is returned for codes that do not map to a window,
// such as the "custom" preset.
var ErrUnknownTimeRange = errors.New("unknown time range")

// maxHours is the longest window a time.Duration can hold.
const maxHours = int64(math.MaxInt64 / int64(time.Hour))

// TimeRangeHours converts a short code ("1h", "24h", "7d", "2w") to hours.
func TimeRangeHours(code string) (int, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if len(code) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimeRange, code)
	}

	n, err := strconv.Atoi(code[:len(code)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimeRange, code)
	}

	var per int64
	switch code[len(code)-1] {
	case 'h':
		per = 1
	case 'd':
		per = 24
	case 'w':
		per = 24 * 7
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimeRange, code)
	}
	if int64(n) > maxHours/per {
		return 0, fmt.Errorf("%w: %q is too long", ErrUnknownTimeRange, code)
	}
	return int(int64(n) * per), nil
}

// ParseTimeRange returns the window [now-hours, now] for a short code.
func ParseTimeRange(code string, now time.Time) (*TimeWindow, error) {
	hours, err := TimeRangeHours(code)
	if err != nil {
		return nil, err
	}
	return &TimeWindow{
		Start: now.Add(-time.Duration(hours) * time.Hour),
		End:   now,
	}, nil
}

// TimeRangePhrase is the search phrase for the preset codes, "" otherwise.
func TimeRangePhrase(code string) string {
	switch strings.TrimSpace(code) {
	case "1h":
		return "last hour"
	case "24h":
		return "last 24 hours"
	case "7d":
		return "last week"
	case "30d":
		return "last month"
	default:
		return ""
	}
}
