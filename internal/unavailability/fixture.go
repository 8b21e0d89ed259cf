package unavailability

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nekogravitycat/flight-schedule-grid/internal/resource"
)

// fixtureFile is the on-disk YAML layout.
type fixtureFile struct {
	Periods   []fixturePeriod    `yaml:"periods"`
	Recurring []fixtureRecurring `yaml:"recurring"`
}

type fixturePeriod struct {
	ID           string `yaml:"id"`
	ResourceID   string `yaml:"resource_id"`
	ResourceKind string `yaml:"resource_kind"`
	Start        string `yaml:"start"`
	End          string `yaml:"end"`
	Reason       string `yaml:"reason"`
	Pattern      string `yaml:"pattern"`
}

type fixtureRecurring struct {
	ID           string   `yaml:"id"`
	ResourceID   string   `yaml:"resource_id"`
	ResourceKind string   `yaml:"resource_kind"`
	From         string   `yaml:"from"` // HH:MM
	To           string   `yaml:"to"`   // HH:MM
	Weekdays     []string `yaml:"weekdays"`
	Reason       string   `yaml:"reason"`
	Pattern      string   `yaml:"pattern"`
}

// recurringWindow is a daily window expanded on demand.
type recurringWindow struct {
	id       string
	key      resource.Key
	from     time.Duration // offset from midnight
	to       time.Duration
	weekdays map[time.Weekday]bool // empty means every day
	reason   string
	pattern  Pattern
}

// FixtureSource serves periods declared in a YAML fixture: absolute periods plus
// daily recurring windows (e.g. instructor duty breaks).
type FixtureSource struct {
	loc       *time.Location
	periods   []Period
	recurring []recurringWindow
}

// LoadFixture reads a fixture file. Recurring windows are interpreted in loc.
func LoadFixture(path string, loc *time.Location) (*FixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read unavailability fixture: %w", err)
	}
	return ParseFixture(data, loc)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(data []byte, loc *time.Location) (*FixtureSource, error) {
	if loc == nil {
		loc = time.Local
	}

	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode unavailability fixture: %w", err)
	}

	src := &FixtureSource{loc: loc}

	for i, fp := range f.Periods {
		kind, err := resource.ParseKind(fp.ResourceKind)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", i, err)
		}
		start, err := time.Parse(time.RFC3339, fp.Start)
		if err != nil {
			return nil, fmt.Errorf("period %d: invalid start: %w", i, err)
		}
		end, err := time.Parse(time.RFC3339, fp.End)
		if err != nil {
			return nil, fmt.Errorf("period %d: invalid end: %w", i, err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("period %d: end must be after start", i)
		}
		pattern, err := parsePattern(fp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", i, err)
		}
		src.periods = append(src.periods, Period{
			ID:           fp.ID,
			ResourceID:   fp.ResourceID,
			ResourceKind: kind,
			StartTime:    start,
			EndTime:      end,
			Reason:       fp.Reason,
			Pattern:      pattern,
		})
	}

	for i, fr := range f.Recurring {
		kind, err := resource.ParseKind(fr.ResourceKind)
		if err != nil {
			return nil, fmt.Errorf("recurring %d: %w", i, err)
		}
		from, err := parseClock(fr.From)
		if err != nil {
			return nil, fmt.Errorf("recurring %d: invalid from: %w", i, err)
		}
		to, err := parseClock(fr.To)
		if err != nil {
			return nil, fmt.Errorf("recurring %d: invalid to: %w", i, err)
		}
		if to <= from {
			return nil, fmt.Errorf("recurring %d: to must be after from", i)
		}
		weekdays, err := parseWeekdays(fr.Weekdays)
		if err != nil {
			return nil, fmt.Errorf("recurring %d: %w", i, err)
		}
		pattern, err := parsePattern(fr.Pattern)
		if err != nil {
			return nil, fmt.Errorf("recurring %d: %w", i, err)
		}
		src.recurring = append(src.recurring, recurringWindow{
			id:       fr.ID,
			key:      resource.Key{ID: fr.ResourceID, Kind: kind},
			from:     from,
			to:       to,
			weekdays: weekdays,
			reason:   fr.Reason,
			pattern:  pattern,
		})
	}

	return src, nil
}

// PeriodsBetween returns absolute periods first, then recurring windows expanded day by day.
func (s *FixtureSource) PeriodsBetween(_ context.Context, from, to time.Time) ([]Period, error) {
	var out []Period
	for _, p := range s.periods {
		if p.Overlaps(from, to) {
			out = append(out, p)
		}
	}

	f := from.In(s.loc)
	day := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, s.loc)
	for ; day.Before(to); day = day.AddDate(0, 0, 1) {
		for _, w := range s.recurring {
			if len(w.weekdays) > 0 && !w.weekdays[day.Weekday()] {
				continue
			}
			p := Period{
				ID:           fmt.Sprintf("%s@%s", w.id, day.Format("2006-01-02")),
				ResourceID:   w.key.ID,
				ResourceKind: w.key.Kind,
				StartTime:    atOffset(day, w.from),
				EndTime:      atOffset(day, w.to),
				Reason:       w.reason,
				Pattern:      w.pattern,
			}
			if p.Overlaps(from, to) {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// atOffset builds the wall-clock time so DST transitions do not shift the window.
func atOffset(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

func parsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case "":
		return PatternDiagonal, nil
	case PatternDiagonal, PatternSolid:
		return Pattern(s), nil
	default:
		return "", fmt.Errorf("unknown pattern %q", s)
	}
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts full English weekday names, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

func parseWeekdays(names []string) (map[time.Weekday]bool, error) {
	set := make(map[time.Weekday]bool, len(names))
	for _, n := range names {
		wd, err := ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		set[wd] = true
	}
	return set, nil
}
