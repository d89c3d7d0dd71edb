package sales

import "time"

// FilterDateRange returns a new table containing rows whose Order Date
// falls within [from, to], compared by calendar date with time-of-day
// discarded. A zero bound is open.
func (t *Table) FilterDateRange(from, to time.Time) *Table {
	fromDay := truncateDay(from)
	toDay := truncateDay(to)
	keep := make([]int, 0, t.rows)
	for i, d := range t.dates {
		day := truncateDay(d)
		if !from.IsZero() && day.Before(fromDay) {
			continue
		}
		if !to.IsZero() && day.After(toDay) {
			continue
		}
		keep = append(keep, i)
	}
	return t.subset(keep)
}

// FilterIn returns a new table containing rows whose column value is in the
// allowed set. An absent column or nil set leaves the table unchanged,
// mirroring how dashboard filters only apply when the column exists.
func (t *Table) FilterIn(column string, allowed []string) *Table {
	col, ok := t.text[column]
	if !ok || allowed == nil {
		return t.Clone()
	}
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	keep := make([]int, 0, t.rows)
	for i := range t.dates {
		if _, in := set[col[i]]; in {
			keep = append(keep, i)
		}
	}
	return t.subset(keep)
}

func (t *Table) subset(keep []int) *Table {
	dates := make([]time.Time, len(keep))
	for j, i := range keep {
		dates[j] = t.dates[i]
	}
	numbers := make(map[string][]Number, len(t.numbers))
	for name, col := range t.numbers {
		sub := make([]Number, len(keep))
		for j, i := range keep {
			sub[j] = col[i]
		}
		numbers[name] = sub
	}
	text := make(map[string][]string, len(t.text))
	for name, col := range t.text {
		sub := make([]string, len(keep))
		for j, i := range keep {
			sub[j] = col[i]
		}
		text[name] = sub
	}
	return &Table{
		headers: append([]string(nil), t.headers...),
		dates:   dates,
		numbers: numbers,
		text:    text,
		rows:    len(keep),
	}
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
