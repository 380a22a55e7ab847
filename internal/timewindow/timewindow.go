// Package timewindow parses the request's day+range preference strings
// (e.g. "LU 08:00-10:00") and tests whether a section's meetings fall
// within a set of such windows. It is shared by the clique selector's
// preferred-time bonus (§4.7) and the free_day_time filter (§6.2).
package timewindow

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nomadstar/classplanner/internal/sectionset"
)

// Window is one day-scoped time range.
type Window struct {
	Day         sectionset.Day
	StartMinute int
	EndMinute   int
}

var dayTokens = map[string]sectionset.Day{
	"LU": sectionset.Mon,
	"MA": sectionset.Tue,
	"MI": sectionset.Wed,
	"JU": sectionset.Thu,
	"VI": sectionset.Fri,
	"SA": sectionset.Sat,
	"MO": sectionset.Mon,
	"TU": sectionset.Tue,
	"WE": sectionset.Wed,
	"TH": sectionset.Thu,
	"FR": sectionset.Fri,
}

// ParseDay resolves a single day token ("LU", "MO", ...) to a
// sectionset.Day, used by request-level day lists like free_day_time's
// free_days that name days without an accompanying time range.
func ParseDay(token string) (sectionset.Day, bool) {
	d, ok := dayTokens[strings.ToUpper(strings.TrimSpace(token))]
	return d, ok
}

// Parse parses one "DAY HH:MM-HH:MM" string.
func Parse(raw string) (Window, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) != 2 {
		return Window{}, fmt.Errorf("malformed time window %q", raw)
	}
	day, ok := dayTokens[strings.ToUpper(fields[0])]
	if !ok {
		return Window{}, fmt.Errorf("unknown day token %q in %q", fields[0], raw)
	}
	parts := strings.SplitN(fields[1], "-", 2)
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("malformed range %q", fields[1])
	}
	start, err := parseHHMM(parts[0])
	if err != nil {
		return Window{}, err
	}
	end, err := parseHHMM(parts[1])
	if err != nil {
		return Window{}, err
	}
	if end <= start {
		return Window{}, fmt.Errorf("window end %s not after start %s", parts[1], parts[0])
	}
	return Window{Day: day, StartMinute: start, EndMinute: end}, nil
}

// ParseAll parses a list of window strings, skipping ones that fail to
// parse (a malformed preference should not block planning) and returning
// what could not be parsed for diagnostics.
func ParseAll(raws []string) (windows []Window, malformed []string) {
	for _, r := range raws {
		w, err := Parse(r)
		if err != nil {
			malformed = append(malformed, r)
			continue
		}
		windows = append(windows, w)
	}
	return windows, malformed
}

func parseHHMM(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", s, err)
	}
	return h*60 + m, nil
}

// Contains reports whether a meeting falls entirely within a window (same
// day, meeting interval a subset of the window interval).
func (w Window) Contains(m sectionset.Meeting) bool {
	return m.Day == w.Day && m.StartMinute >= w.StartMinute && m.EndMinute <= w.EndMinute
}

// AllWithin reports whether every meeting of a section falls within at
// least one of the given windows. An empty windows list is vacuously false
// (there is nothing to be "within"), matching the bonus only ever applying
// when the caller actually supplied preferences.
func AllWithin(meetings []sectionset.Meeting, windows []Window) bool {
	if len(windows) == 0 {
		return false
	}
	for _, m := range meetings {
		matched := false
		for _, w := range windows {
			if w.Contains(m) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// AnyWithin reports whether at least one meeting falls within one of the
// windows, a looser test than AllWithin. No other package calls it; the
// free_day_time filter applies its own every-meeting-within-a-range rule.
func AnyWithin(meetings []sectionset.Meeting, windows []Window) bool {
	for _, m := range meetings {
		for _, w := range windows {
			if w.Contains(m) {
				return true
			}
		}
	}
	return false
}
