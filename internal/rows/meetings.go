package rows

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nomadstar/classplanner/internal/sectionset"
)

var spanishDayTokens = map[string]sectionset.Day{
	"LU": sectionset.Mon,
	"MA": sectionset.Tue,
	"MI": sectionset.Wed,
	"JU": sectionset.Thu,
	"VI": sectionset.Fri,
	"SA": sectionset.Sat,
}

// ParseMeetings parses the offering table's meetings grammar:
//
//	(day_token (' ' day_token)* ' ' HH:MM ' - ' HH:MM)+
//
// with day tokens in {LU, MA, MI, JU, VI, SA}, mapped to MO..SA. Each
// pattern is a Cartesian product over its listed days: "LU MI 08:00 - 09:30"
// yields two Meetings, one for Mon and one for Wed.
func ParseMeetings(raw string) ([]sectionset.Meeting, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("empty meetings string")
	}

	patterns, err := splitPatterns(raw)
	if err != nil {
		return nil, err
	}

	var meetings []sectionset.Meeting
	for _, p := range patterns {
		days, start, end, err := parsePattern(p)
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			meetings = append(meetings, sectionset.Meeting{Day: d, StartMinute: start, EndMinute: end})
		}
	}
	if len(meetings) == 0 {
		return nil, fmt.Errorf("meetings string %q produced no meetings", raw)
	}
	return meetings, nil
}

// splitPatterns splits on the "HH:MM - HH:MM" boundary, since a single
// meetings cell may list several day-groups each with its own time range,
// e.g. "LU MI 08:00 - 09:30 VI 10:00 - 11:00".
func splitPatterns(raw string) ([]string, error) {
	fields := strings.Fields(raw)
	var patterns []string
	var current []string
	i := 0
	for i < len(fields) {
		current = append(current, fields[i])
		if isTimeToken(fields[i]) && i+2 < len(fields) && fields[i+1] == "-" && isTimeToken(fields[i+2]) {
			current = append(current, fields[i+1], fields[i+2])
			patterns = append(patterns, strings.Join(current, " "))
			current = nil
			i += 3
			continue
		}
		i++
	}
	if len(current) > 0 {
		return nil, fmt.Errorf("trailing unparsed tokens in meetings string %q", raw)
	}
	return patterns, nil
}

func isTimeToken(s string) bool {
	return strings.Contains(s, ":")
}

func parsePattern(pattern string) (days []sectionset.Day, start, end int, err error) {
	fields := strings.Fields(pattern)
	if len(fields) < 4 {
		return nil, 0, 0, fmt.Errorf("malformed meeting pattern %q", pattern)
	}
	// last three tokens are "HH:MM", "-", "HH:MM"; everything before is day tokens
	dayTokens := fields[:len(fields)-3]
	startTok, dash, endTok := fields[len(fields)-3], fields[len(fields)-2], fields[len(fields)-1]
	if dash != "-" {
		return nil, 0, 0, fmt.Errorf("malformed meeting pattern %q", pattern)
	}
	if len(dayTokens) == 0 {
		return nil, 0, 0, fmt.Errorf("meeting pattern %q has no day tokens", pattern)
	}

	for _, tok := range dayTokens {
		d, ok := spanishDayTokens[strings.ToUpper(tok)]
		if !ok {
			return nil, 0, 0, fmt.Errorf("unknown day token %q", tok)
		}
		days = append(days, d)
	}

	start, err = parseHHMM(startTok)
	if err != nil {
		return nil, 0, 0, err
	}
	end, err = parseHHMM(endTok)
	if err != nil {
		return nil, 0, 0, err
	}
	if end <= start {
		return nil, 0, 0, fmt.Errorf("meeting end %s not after start %s", endTok, startTok)
	}
	return days, start, end, nil
}

func parseHHMM(s string) (int, error) {
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
	if h < 0 || h > 24 || m < 0 || m >= 60 {
		return 0, fmt.Errorf("time out of range %q", s)
	}
	total := h*60 + m
	if total%5 != 0 {
		return 0, fmt.Errorf("time %q is not a multiple of 5 minutes", s)
	}
	return total, nil
}
