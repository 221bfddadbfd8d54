package stats

import "sort"

// DefaultMaxLookback bounds the streak walk so sparse data can't spin the
// loop forever.
const DefaultMaxLookback = 365

// CurrentStreak counts consecutive days with activity walking backward from
// today. A missing "today" does not break the run: the user may simply not
// have logged yet, so offset 0 gets a grace day and the walk continues from
// yesterday. Any gap at offset >= 1 stops the count.
//
// Activity on {today-1, today-2} with nothing today yields 2; activity on
// {today-2} alone yields 0.
func CurrentStreak(active map[DateBucket]struct{}, today DateBucket, maxLookback int) int {
	if len(active) == 0 {
		return 0
	}
	if maxLookback <= 0 {
		maxLookback = DefaultMaxLookback
	}
	count := 0
	for i := 0; i < maxLookback; i++ {
		if _, ok := active[today.AddDays(-i)]; ok {
			count++
		} else if i > 0 {
			break
		}
	}
	return count
}

// LongestStreak scans the whole activity set for the longest run of
// consecutive days, regardless of where it ends.
func LongestStreak(active map[DateBucket]struct{}) int {
	if len(active) == 0 {
		return 0
	}
	dates := make([]DateBucket, 0, len(active))
	for d := range active {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDays(1) == dates[i] {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
