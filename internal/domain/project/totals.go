package project

// TotalMaterialsCost sums the stored totals of a project's materials.
// It is a pure read: the result is recomputed on every call and an empty
// collection yields 0.
func TotalMaterialsCost(p *Project) float64 {
	var sum float64
	for _, m := range p.Materials {
		sum += m.Total
	}
	return sum
}

// TotalHours sums the hours of a project's time entries.
func TotalHours(p *Project) float64 {
	var sum float64
	for _, e := range p.TimeEntries {
		sum += e.Hours
	}
	return sum
}
