package domain

// YearCount es la cantidad de spinoffs de un año.
type YearCount struct {
	Year  int
	Count int
}

// SpinoffSchedule es la secuencia año → spinoffs en orden cronológico.
// Sólo se construye con NewSpinoffSchedule, que garantiza años estrictamente crecientes.
type SpinoffSchedule struct {
	entries []YearCount
}

// NewSpinoffSchedule valida y copia las entradas.
func NewSpinoffSchedule(entries []YearCount) (SpinoffSchedule, error) {
	out := make([]YearCount, len(entries))
	for i, e := range entries {
		if e.Count < 0 {
			return SpinoffSchedule{}, invalid("spinoffs.count", e.Count, "must not be negative")
		}
		if i > 0 && e.Year <= entries[i-1].Year {
			return SpinoffSchedule{}, invalid("spinoffs.year", e.Year, "years must be strictly increasing")
		}
		out[i] = e
	}
	return SpinoffSchedule{entries: out}, nil
}

// ScheduleFromCounts arma un schedule de años consecutivos desde firstYear.
func ScheduleFromCounts(firstYear int, counts []int) (SpinoffSchedule, error) {
	entries := make([]YearCount, len(counts))
	for i, c := range counts {
		entries[i] = YearCount{Year: firstYear + i, Count: c}
	}
	return NewSpinoffSchedule(entries)
}

// DefaultSpinoffSchedule devuelve 2023–2030 con los spinoffs del escenario de referencia.
func DefaultSpinoffSchedule() SpinoffSchedule {
	s, _ := ScheduleFromCounts(2023, []int{2, 1, 3, 4, 6, 9, 13, 18})
	return s
}

// Entries devuelve una copia de las entradas.
func (s SpinoffSchedule) Entries() []YearCount {
	out := make([]YearCount, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s SpinoffSchedule) Len() int { return len(s.entries) }

// Total devuelve la suma de spinoffs de todos los años.
func (s SpinoffSchedule) Total() int {
	total := 0
	for _, e := range s.entries {
		total += e.Count
	}
	return total
}
