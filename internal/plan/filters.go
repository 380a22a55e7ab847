package plan

import (
	"github.com/nomadstar/classplanner/internal/filter"
	"github.com/nomadstar/classplanner/internal/sectionset"
	"github.com/nomadstar/classplanner/internal/timewindow"
)

// buildFilterConfig translates the request's filter block into
// internal/filter's Config, dropping malformed range strings rather than
// failing the whole call (consistent with PreferredTimes' own tolerance).
func buildFilterConfig(fr *FiltersRequest, nMax int) filter.Config {
	cfg := filter.Config{NMax: nMax}
	if fr == nil {
		return cfg
	}

	if fr.FreeDayTime != nil && fr.FreeDayTime.Enabled {
		cfg.FreeDayTime = filter.FreeDayTimeConfig{
			Enabled:      true,
			FreeDays:     parseDays(fr.FreeDayTime.FreeDays),
			Ranges:       parseRanges(fr.FreeDayTime.Ranges),
			MinimizeGaps: fr.FreeDayTime.MinimizeGaps,
		}
	}
	if fr.InterActivity != nil && fr.InterActivity.Enabled {
		cfg.InterActivity = filter.InterActivityConfig{
			Enabled:    true,
			MinMinutes: fr.InterActivity.MinMinutes,
		}
	}
	if fr.InstructorPref != nil && fr.InstructorPref.Enabled {
		cfg.InstructorPref = filter.InstructorPrefConfig{
			Enabled: true,
			Prefer:  fr.InstructorPref.Prefer,
			Avoid:   fr.InstructorPref.Avoid,
		}
	}
	if fr.LineBalance != nil && fr.LineBalance.Enabled {
		cfg.LineBalance = filter.LineBalanceConfig{
			Enabled: true,
			Lines:   fr.LineBalance.Lines,
		}
	}
	return cfg
}

func parseDays(tokens []string) []sectionset.Day {
	var out []sectionset.Day
	for _, t := range tokens {
		if d, ok := timewindow.ParseDay(t); ok {
			out = append(out, d)
		}
	}
	return out
}

func parseRanges(raws []string) []filter.Window {
	var out []filter.Window
	for _, raw := range raws {
		w, err := timewindow.Parse(raw)
		if err != nil {
			continue
		}
		out = append(out, filter.Window{Day: w.Day, StartMinute: w.StartMinute, EndMinute: w.EndMinute})
	}
	return out
}
