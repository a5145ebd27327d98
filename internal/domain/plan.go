package domain

// PlanID identifies a course plan
type PlanID string

const (
	PlanLight PlanID = "light"
	PlanHalf  PlanID = "half"
	PlanFree  PlanID = "free"
)

// CoursePlan is the static configuration of a course tier: the monthly hour
// allowance and the subjects it covers. Plans are not editable at runtime.
type CoursePlan struct {
	ID           PlanID
	Name         string
	MonthlyHours int
	Subjects     []string
}

// plans is the fixed catalog, ordered by monthly allowance
var plans = []CoursePlan{
	{
		ID:           PlanLight,
		Name:         "Light",
		MonthlyHours: 10,
		Subjects:     []string{"math", "english"},
	},
	{
		ID:           PlanHalf,
		Name:         "Half",
		MonthlyHours: 15,
		Subjects:     []string{"math", "english", "science"},
	},
	{
		ID:           PlanFree,
		Name:         "Free",
		MonthlyHours: 30,
		Subjects:     []string{"math", "english", "science", "history", "languages"},
	},
}

// Plans returns the full course plan catalog
func Plans() []CoursePlan {
	out := make([]CoursePlan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID looks up a course plan by its identifier
func PlanByID(id PlanID) (CoursePlan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return CoursePlan{}, false
}

// CourseUsage is the derived monthly quota state for one student on one plan.
// Only confirmed reservations consume quota: a future confirmed booking is
// charged at booking time, while cancelled and completed ones never count.
type CourseUsage struct {
	UsedHours       int
	RemainingHours  int
	TotalHours      int
	UsagePercentage float64
}
