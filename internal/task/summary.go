package task

// StatusCount is one slice of the summary chart.
type StatusCount struct {
	Status Status
	Count  int
}

// Summary holds per-status counts in Statuses order.
type Summary struct {
	Counts []StatusCount
	Total  int
}

func (s Summary) Count(st Status) int {
	for _, c := range s.Counts {
		if c.Status == st {
			return c.Count
		}
	}
	return 0
}

// Summarize counts tasks by status.
func Summarize(tasks []Task) Summary {
	counts := make(map[Status]int, len(Statuses))
	for _, t := range tasks {
		counts[t.Status]++
	}
	sum := Summary{Total: len(tasks)}
	for _, st := range Statuses {
		sum.Counts = append(sum.Counts, StatusCount{Status: st, Count: counts[st]})
	}
	return sum
}

// Summary counts the store's current tasks by status.
func (s *Store) Summary() Summary {
	return Summarize(s.Tasks())
}
