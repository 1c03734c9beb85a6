package birthday

// Today returns the profiles whose birthday is today, keeping projection order.
func Today(profiles []Profile) []Profile {
	return filter(profiles, func(p Profile) bool { return p.DaysUntil == 0 })
}

// ThisWeek returns birthdays from tomorrow up to seven days out.
func ThisWeek(profiles []Profile) []Profile {
	return filter(profiles, func(p Profile) bool { return p.DaysUntil > 0 && p.DaysUntil <= 7 })
}

// ByMonth returns the profiles born in month (0 = January), regardless of
// which year their next birthday falls in.
func ByMonth(profiles []Profile, month int) []Profile {
	return filter(profiles, func(p Profile) bool { return p.BirthMonth == month })
}

// Upcoming returns at most n profiles from the front of the projection.
func Upcoming(profiles []Profile, n int) []Profile {
	if n < 0 {
		n = 0
	}
	if n > len(profiles) {
		n = len(profiles)
	}
	return append(make([]Profile, 0, n), profiles[:n]...)
}

// Buckets groups a projection the way the birthday page renders it.
type Buckets struct {
	Today    []Profile `json:"today"`
	ThisWeek []Profile `json:"this_week"`
	Month    int       `json:"month"`
	ByMonth  []Profile `json:"by_month"`
	All      []Profile `json:"all"`
}

// Bucket splits a sorted projection into the page sections for month.
func Bucket(profiles []Profile, month int) Buckets {
	return Buckets{
		Today:    Today(profiles),
		ThisWeek: ThisWeek(profiles),
		Month:    month,
		ByMonth:  ByMonth(profiles, month),
		All:      append(make([]Profile, 0, len(profiles)), profiles...),
	}
}

func filter(profiles []Profile, keep func(Profile) bool) []Profile {
	out := make([]Profile, 0)
	for _, p := range profiles {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
