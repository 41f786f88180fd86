package preview

import (
	"time"

	"ai-chat-history-be/internal/entity"
)

// Category is one of the six time-relative groups previews are displayed in.
type Category int

const (
	CategoryToday Category = iota
	CategoryYesterday
	CategoryLast7Days
	CategoryLast30Days
	CategoryLast2Months
	CategoryOlder
)

func (c Category) String() string {
	switch c {
	case CategoryToday:
		return "today"
	case CategoryYesterday:
		return "yesterday"
	case CategoryLast7Days:
		return "last7Days"
	case CategoryLast30Days:
		return "last30Days"
	case CategoryLast2Months:
		return "last2Months"
	default:
		return "older"
	}
}

// CategorizedChats partitions a flat preview list into the six buckets.
// Every preview lands in exactly one bucket; each bucket preserves the
// relative order of the source list.
type CategorizedChats struct {
	Today       []entity.ChatPreview
	Yesterday   []entity.ChatPreview
	Last7Days   []entity.ChatPreview
	Last30Days  []entity.ChatPreview
	Last2Months []entity.ChatPreview
	Older       []entity.ChatPreview
}

// Bucket maps a creation timestamp to exactly one category, evaluated
// against an explicit now so results are deterministic. Today and yesterday
// compare calendar dates in loc; the remaining cutoffs use a strict lower
// bound and an inclusive upper bound, so a timestamp exactly at now-7d
// falls into last30Days, not last7Days.
func Bucket(createdAt, now time.Time, loc *time.Location) Category {
	created := createdAt.In(loc)
	ref := now.In(loc)

	cy, cm, cd := created.Date()
	ty, tm, td := ref.Date()
	if cy == ty && cm == tm && cd == td {
		return CategoryToday
	}

	yy, ym, yd := ref.AddDate(0, 0, -1).Date()
	if cy == yy && cm == ym && cd == yd {
		return CategoryYesterday
	}

	switch {
	case created.After(ref.AddDate(0, 0, -7)):
		return CategoryLast7Days
	case created.After(ref.AddDate(0, 0, -30)):
		return CategoryLast30Days
	case created.After(ref.AddDate(0, 0, -60)):
		return CategoryLast2Months
	default:
		return CategoryOlder
	}
}

// Categorize partitions previews through Bucket, preserving input order
// within each bucket.
func Categorize(previews []entity.ChatPreview, now time.Time, loc *time.Location) CategorizedChats {
	var c CategorizedChats
	for _, p := range previews {
		switch Bucket(p.CreatedAt, now, loc) {
		case CategoryToday:
			c.Today = append(c.Today, p)
		case CategoryYesterday:
			c.Yesterday = append(c.Yesterday, p)
		case CategoryLast7Days:
			c.Last7Days = append(c.Last7Days, p)
		case CategoryLast30Days:
			c.Last30Days = append(c.Last30Days, p)
		case CategoryLast2Months:
			c.Last2Months = append(c.Last2Months, p)
		default:
			c.Older = append(c.Older, p)
		}
	}
	return c
}
