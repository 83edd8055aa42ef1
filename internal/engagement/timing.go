package engagement

import (
	"errors"
	"log/slog"
	"math"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/spacesedan/skypulse/internal/models"
)

var ErrNoPosts = errors.New("[Engagement] no posts to analyze")

type DailyTotal struct {
	Day   time.Time
	Total int
}

// DailyTotals sums total engagement per UTC calendar day, from the first to
// the last day seen. Days without posts are present with a zero total.
func DailyTotals(posts []models.Post) []DailyTotal {
	sums := make(map[time.Time]int)
	var first, last time.Time

	for _, p := range timed(posts) {
		day := truncateDay(p.at)
		sums[day] += p.post.Total()
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	if len(sums) == 0 {
		return nil
	}

	var out []DailyTotal
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		out = append(out, DailyTotal{Day: day, Total: sums[day]})
	}
	return out
}

type HourMean struct {
	Hour  int
	Mean  float64
	Posts int
}

// HourlyMean returns the mean total engagement per UTC posting hour, for
// the hours that have posts, ascending.
func HourlyMean(posts []models.Post) []HourMean {
	var sums, counts [24]int
	for _, p := range timed(posts) {
		h := p.at.Hour()
		sums[h] += p.post.Total()
		counts[h]++
	}

	var out []HourMean
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		out = append(out, HourMean{Hour: h, Mean: float64(sums[h]) / float64(counts[h]), Posts: counts[h]})
	}
	return out
}

// BestTimes holds the posting hour, weekday and text length with the
// highest mean engagement.
type BestTimes struct {
	Hour        int
	HourMean    float64
	Weekday     time.Weekday
	WeekdayMean float64
	Length      int
	LengthMean  float64
}

// BestPost finds the best hour, weekday and length. Ties go to the smallest
// key, with weeks starting on Monday. Length is counted in characters of the
// original text.
func BestPost(posts []models.Post) (BestTimes, error) {
	if len(posts) == 0 {
		return BestTimes{}, ErrNoPosts
	}

	var best BestTimes
	lengths := make(map[int][]int)
	for _, p := range posts {
		n := utf8.RuneCountInString(p.OriginalText)
		lengths[n] = append(lengths[n], p.Total())
	}
	best.Length, best.LengthMean = bestKey(lengths)

	hours := make(map[int][]int)
	weekdays := make(map[int][]int)
	for _, p := range timed(posts) {
		hours[p.at.Hour()] = append(hours[p.at.Hour()], p.post.Total())
		day := mondayFirst(p.at.Weekday())
		weekdays[day] = append(weekdays[day], p.post.Total())
	}
	if len(hours) == 0 {
		best.Hour, best.HourMean = -1, math.NaN()
		best.Weekday, best.WeekdayMean = -1, math.NaN()
		return best, nil
	}
	best.Hour, best.HourMean = bestKey(hours)
	var day int
	day, best.WeekdayMean = bestKey(weekdays)
	best.Weekday = time.Weekday((day + 1) % 7)

	return best, nil
}

// mondayFirst numbers weekdays from Monday = 0 to Sunday = 6.
func mondayFirst(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// LengthCorrelation correlates the character count of each post with its
// total engagement.
func LengthCorrelation(posts []models.Post) float64 {
	lengths := make([]float64, len(posts))
	totals := make([]float64, len(posts))
	for i, p := range posts {
		lengths[i] = float64(utf8.RuneCountInString(p.OriginalText))
		totals[i] = float64(p.Total())
	}
	return Pearson(lengths, totals)
}

func bestKey(groups map[int][]int) (int, float64) {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	bestK, bestMean := keys[0], math.Inf(-1)
	for _, k := range keys {
		sum := 0
		for _, v := range groups[k] {
			sum += v
		}
		if mean := float64(sum) / float64(len(groups[k])); mean > bestMean {
			bestK, bestMean = k, mean
		}
	}
	return bestK, bestMean
}

type timedPost struct {
	post models.Post
	at   time.Time
}

func timed(posts []models.Post) []timedPost {
	out := make([]timedPost, 0, len(posts))
	for _, p := range posts {
		at, err := p.Time()
		if err != nil {
			slog.Debug("[Engagement] Skipping post with unparseable timestamp",
				slog.String("timestamp", p.Timestamp),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, timedPost{post: p, at: at.UTC()})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
