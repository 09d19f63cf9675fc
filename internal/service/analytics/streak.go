package analytics

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

// Streak - серия дней активности студента
type Streak struct {
	Current      int     `json:"current"`
	Longest      int     `json:"longest"`
	LastActivity *string `json:"last_activity"`
}

const secondsPerDay = 24 * 60 * 60

// ComputeStreak считает текущую и самую длинную серию по дням активности.
// activity - даты прохождения уроков и попыток тестов вместе, в любом порядке и с повторами.
// Дни определяются по календарю в loc.
func ComputeStreak(activity []time.Time, now time.Time, loc *time.Location) Streak {
	if loc == nil {
		loc = time.UTC
	}

	days := distinctDays(activity, loc)
	if len(days) == 0 {
		return Streak{}
	}

	streak := Streak{}

	// Текущая серия начинается, только если последний день активности - сегодня или вчера
	if gap := dayNumber(now, loc) - days[0]; gap == 0 || gap == 1 {
		streak.Current = 1
		for i := 1; i < len(days) && days[i-1]-days[i] == 1; i++ {
			streak.Current++
		}
	}

	run := 1
	streak.Longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] == 1 {
			run++
		} else {
			run = 1
		}
		if run > streak.Longest {
			streak.Longest = run
		}
	}
	if streak.Current > streak.Longest {
		streak.Longest = streak.Current
	}

	last := dayStart(days[0], loc)
	label := humanize.RelTime(last, now.In(loc), "ago", "from now")
	streak.LastActivity = &label

	return streak
}

// distinctDays возвращает номера календарных дней без повторов, от новых к старым
func distinctDays(activity []time.Time, loc *time.Location) []int64 {
	seen := make(map[int64]struct{}, len(activity))
	days := make([]int64, 0, len(activity))
	for _, t := range activity {
		if t.IsZero() {
			continue
		}
		d := dayNumber(t, loc)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}

// dayNumber переводит момент времени в номер календарного дня в loc.
// Дата берётся в loc, а считается в UTC, поэтому переход на летнее время не сдвигает разницу.
func dayNumber(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

func dayStart(day int64, loc *time.Location) time.Time {
	y, m, d := time.Unix(day*secondsPerDay, 0).UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
