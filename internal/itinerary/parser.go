package itinerary

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ParseMode tags how far the parser had to degrade to produce activities.
type ParseMode string

const (
	ParseOK       ParseMode = "ok"
	ParseDegraded ParseMode = "degraded"
)

// ParseOutcome is the tagged result of parsing; a failed parse is reported
// through the error return, never as a partial outcome.
type ParseOutcome struct {
	Activities []ParsedActivity `json:"activities"`
	Mode       ParseMode        `json:"mode"`
}

const (
	defaultDurationMinutes = 120
	defaultTheme           = "culture"
	syntheticFirstStart    = 9 * 60 // 09:00
	syntheticStepMinutes   = 120
)

// tagThemes maps itinerary tags to themes. First tag hit wins; the table is
// intentionally incomplete and unmatched tags fall through to the default.
var tagThemes = map[string]string{
	"自然": "nature", "风景": "nature", "公园": "nature", "散步": "nature",
	"美食": "food", "小吃": "food", "咖啡": "food", "餐厅": "food",
	"文化": "culture", "寺庙": "culture", "神社": "culture",
	"历史": "history", "古迹": "history",
	"艺术": "art", "博物馆": "art", "展览": "art",
	"购物": "shopping", "市场": "shopping",
	"夜景": "nightlife", "酒吧": "nightlife",
	"温泉": "relax", "放松": "relax", "休息": "relax",
	"nature": "nature", "park": "nature", "walk": "nature",
	"food": "food", "cafe": "food", "restaurant": "food",
	"culture": "culture", "temple": "culture", "shrine": "culture",
	"history": "history", "museum": "art", "art": "art",
	"shopping": "shopping", "market": "shopping",
	"nightlife": "nightlife", "bar": "nightlife",
	"onsen": "relax", "relax": "relax",
}

var (
	structuredLineRe = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*[-~—]\s*(\d{1,2}:\d{2})\s*[·・•|]\s*(.+)$`)
	bracketTagsRe    = regexp.MustCompile(`\[([^\[\]]*)\]`)
	timeWindowRe     = regexp.MustCompile(`^(\d{1,2}:\d{2})\s*[-~—]\s*(\d{1,2}:\d{2})$`)
)

// separators that qualify a line as an activity in degraded mode
const lineSeparators = "·・•|,,、-"

// ParseItinerary converts the raw text into an ordered activity list. It
// tries a strict JSON parse, then structured lines, then a degraded line
// heuristic. The error is non-nil only when nothing at all could be
// extracted (ParseFailure); every other malformation degrades.
func ParseItinerary(raw RawItineraryText) (ParseOutcome, error) {
	text := strings.TrimSpace(raw.Text)
	if text == "" {
		return ParseOutcome{}, ErrEmptyItinerary
	}

	if activities, ok := parseJSON(text); ok && len(activities) > 0 {
		return ParseOutcome{Activities: finalize(activities), Mode: ParseOK}, nil
	}

	if activities := parseStructuredLines(text); len(activities) > 0 {
		return ParseOutcome{Activities: finalize(activities), Mode: ParseOK}, nil
	}

	if activities := parseDegradedLines(text); len(activities) > 0 {
		return ParseOutcome{Activities: finalize(activities), Mode: ParseDegraded}, nil
	}

	return ParseOutcome{}, ErrEmptyItinerary
}

// flexStrings tolerates the generative source emitting either a JSON array
// or a single delimited string for tag lists.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = splitTags(single)
	}
	// any other shape is tolerated as "no tags"
	return nil
}

type rawItem struct {
	Time            string      `json:"time"`
	TimeRange       string      `json:"time_range"`
	StartTime       string      `json:"start_time"`
	Place           string      `json:"place"`
	Location        string      `json:"location"`
	Name            string      `json:"name"`
	Title           string      `json:"title"`
	Tags            flexStrings `json:"tags"`
	Description     string      `json:"description"`
	Note            string      `json:"note"`
	DurationMinutes int         `json:"duration_minutes"`
}

func parseJSON(text string) ([]ParsedActivity, bool) {
	var items []rawItem
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		var envelope struct {
			Activities []rawItem `json:"activities"`
			Items      []rawItem `json:"items"`
		}
		if err := json.Unmarshal([]byte(text), &envelope); err != nil {
			return nil, false
		}
		items = envelope.Activities
		if len(items) == 0 {
			items = envelope.Items
		}
	}

	activities := make([]ParsedActivity, 0, len(items))
	for _, item := range items {
		place := firstNonEmpty(item.Place, item.Location, item.Name, item.Title)
		if place == "" {
			continue
		}

		act := ParsedActivity{
			PlaceName:   stripRegionQualifier(place),
			Tags:        item.Tags,
			Description: firstNonEmpty(item.Description, item.Note),
		}

		window := firstNonEmpty(item.TimeRange, item.Time)
		if start, duration, ok := parseTimeWindow(window); ok {
			act.StartTime = start
			act.DurationMinutes = duration
		} else {
			act.StartTime = normalizeClock(firstNonEmpty(item.StartTime, item.Time))
			act.DurationMinutes = item.DurationMinutes
		}
		activities = append(activities, act)
	}
	return activities, true
}

func parseStructuredLines(text string) []ParsedActivity {
	var activities []ParsedActivity
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := structuredLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		start, duration, ok := parseTimeWindow(m[1] + "-" + m[2])
		if !ok {
			start, duration = normalizeClock(m[1]), defaultDurationMinutes
		}

		place, tags, description := splitLineBody(m[3])
		if place == "" {
			continue
		}

		activities = append(activities, ParsedActivity{
			StartTime:       start,
			DurationMinutes: duration,
			PlaceName:       stripRegionQualifier(place),
			Tags:            tags,
			Description:     description,
		})
	}
	return activities
}

// parseDegradedLines is the last-resort heuristic: any non-empty line with a
// separator becomes an activity with default duration and theme.
func parseDegradedLines(text string) []ParsedActivity {
	var activities []ParsedActivity
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.ContainsAny(line, lineSeparators) {
			continue
		}

		place := line
		if i := strings.IndexAny(line, lineSeparators); i > 0 {
			head := strings.TrimSpace(line[:i])
			if head != "" {
				place = head
			}
		}

		activities = append(activities, ParsedActivity{
			DurationMinutes: defaultDurationMinutes,
			PlaceName:       stripRegionQualifier(place),
			Description:     line,
		})
	}
	return activities
}

// splitLineBody separates "place [tags] description" after the time window.
func splitLineBody(body string) (place string, tags []string, description string) {
	body = strings.TrimSpace(body)
	m := bracketTagsRe.FindStringSubmatchIndex(body)
	if m == nil {
		return body, nil, ""
	}
	place = strings.TrimSpace(body[:m[0]])
	tags = splitTags(body[m[2]:m[3]])
	description = strings.TrimSpace(body[m[1]:])
	return place, tags, description
}

// finalize assigns ids, synthetic start times, clamped durations and themes
// in source order.
func finalize(activities []ParsedActivity) []ParsedActivity {
	for i := range activities {
		act := &activities[i]
		act.ID = uuid.NewString()
		if act.StartTime == "" {
			act.StartTime = clockString(syntheticFirstStart + i*syntheticStepMinutes)
		}
		if act.DurationMinutes <= 0 {
			act.DurationMinutes = defaultDurationMinutes
		}
		act.Theme = inferTheme(act.Tags)
	}
	return activities
}

func inferTheme(tags []string) string {
	for _, tag := range tags {
		if theme, ok := tagThemes[strings.ToLower(strings.TrimSpace(tag))]; ok {
			return theme
		}
	}
	return defaultTheme
}

// parseTimeWindow parses "HH:MM-HH:MM"; ok is false unless both bounds are
// valid 24h times with end after start.
func parseTimeWindow(window string) (start string, durationMinutes int, ok bool) {
	m := timeWindowRe.FindStringSubmatch(strings.TrimSpace(window))
	if m == nil {
		return "", 0, false
	}
	startMin, okStart := clockMinutes(m[1])
	endMin, okEnd := clockMinutes(m[2])
	if !okStart || !okEnd || endMin <= startMin {
		if okStart {
			// malformed or inverted window keeps the start, default duration
			return clockString(startMin), defaultDurationMinutes, true
		}
		return "", 0, false
	}
	return clockString(startMin), endMin - startMin, true
}

func clockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func clockString(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func normalizeClock(clock string) string {
	if min, ok := clockMinutes(strings.TrimSpace(clock)); ok {
		return clockString(min)
	}
	return ""
}

// stripRegionQualifier drops a leading country/region prefix such as
// "日本·中目黑河畔" → "中目黑河畔".
func stripRegionQualifier(place string) string {
	place = strings.TrimSpace(place)
	for _, sep := range []string{"·", "・"} {
		if i := strings.Index(place, sep); i > 0 {
			rest := strings.TrimSpace(place[i+len(sep):])
			if rest != "" {
				return rest
			}
		}
	}
	return place
}

func splitTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '、'
	})
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tags = append(tags, f)
		}
	}
	return tags
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
