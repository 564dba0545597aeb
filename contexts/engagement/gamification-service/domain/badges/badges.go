package badges

// Badge keys awarded by the evaluator. Thresholds are independent and
// non-exclusive: a user past both totals holds both badges.
const (
	Trailblazer = "trailblazer"
	ImpactHero  = "impact_hero"
)

type Threshold struct {
	Badge string
	MinXP int64
}

// Thresholds in ascending XP order.
var Thresholds = []Threshold{
	{Badge: Trailblazer, MinXP: 200},
	{Badge: ImpactHero, MinXP: 500},
}

// EligibleFor returns every badge whose threshold the total has reached.
func EligibleFor(totalXP int64) []string {
	eligible := make([]string, 0, len(Thresholds))
	for _, threshold := range Thresholds {
		if totalXP >= threshold.MinXP {
			eligible = append(eligible, threshold.Badge)
		}
	}
	return eligible
}
