package stats

import "github.com/limbo/lifelog/pkg/entity"

// GroupByDate buckets events by the UTC calendar date of OccurredAt.
// Map iteration order is unspecified; order-sensitive consumers build their
// own ascending range (see BuildSeries).
func GroupByDate(events []entity.Event) map[DateBucket][]entity.Event {
	grouped := make(map[DateBucket][]entity.Event)
	for _, ev := range events {
		bucket := BucketOf(ev.OccurredAt)
		grouped[bucket] = append(grouped[bucket], ev)
	}
	return grouped
}

// GroupByDateAndKind buckets events by date, then by kind within each date.
func GroupByDateAndKind(events []entity.Event) map[DateBucket]map[entity.Kind][]entity.Event {
	grouped := make(map[DateBucket]map[entity.Kind][]entity.Event)
	for _, ev := range events {
		bucket := BucketOf(ev.OccurredAt)
		byKind, ok := grouped[bucket]
		if !ok {
			byKind = make(map[entity.Kind][]entity.Event)
			grouped[bucket] = byKind
		}
		byKind[ev.Kind] = append(byKind[ev.Kind], ev)
	}
	return grouped
}

// ActiveDates returns the set of dates carrying at least one event.
func ActiveDates(events []entity.Event) map[DateBucket]struct{} {
	dates := make(map[DateBucket]struct{}, len(events))
	for _, ev := range events {
		dates[BucketOf(ev.OccurredAt)] = struct{}{}
	}
	return dates
}
