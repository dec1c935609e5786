package domain

import "sort"

// BMI categories returned by BMICategory.
const (
	BMIUnderweight = "underweight"
	BMINormal      = "normal"
	BMIOverweight  = "overweight"
	BMIObese       = "obese"
)

// Metrics derives progress statistics from a snapshot of a user's weight
// records and profile. Every computation degrades to 0 when the data it
// needs is missing; none of them fail.
type Metrics struct {
	records []WeightRecord
	profile UserProfile
}

// NewMetrics builds a Metrics over a copy of records sorted by date
// ascending. A nil profile is treated as empty.
func NewMetrics(records []WeightRecord, profile *UserProfile) Metrics {
	sorted := make([]WeightRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	m := Metrics{records: sorted}
	if profile != nil {
		m.profile = *profile
	}
	return m
}

// CurrentWeight is the weight of the chronologically last record, or 0.
func (m Metrics) CurrentWeight() float64 {
	if len(m.records) == 0 {
		return 0
	}
	return m.records[len(m.records)-1].Weight
}

// WeightLost is initial minus current weight. Negative values mean weight
// was gained. Without an initial weight it is 0.
func (m Metrics) WeightLost() float64 {
	initial := positive(m.profile.InitialWeight)
	if initial == 0 {
		return 0
	}
	return initial - m.CurrentWeight()
}

// WeightToGo is current minus target weight; non-positive means the target
// has been reached. Without a target weight it is 0.
func (m Metrics) WeightToGo() float64 {
	target := positive(m.profile.TargetWeight)
	if target == 0 {
		return 0
	}
	return m.CurrentWeight() - target
}

// TotalGoal is the intended change, initial minus target weight. It is 0
// unless both are set.
func (m Metrics) TotalGoal() float64 {
	initial := positive(m.profile.InitialWeight)
	target := positive(m.profile.TargetWeight)
	if initial == 0 || target == 0 {
		return 0
	}
	return initial - target
}

// ProgressPercentage is the share of TotalGoal already lost, in percent.
// It is not clamped: overshooting the target yields more than 100 and
// gaining weight yields a negative value.
func (m Metrics) ProgressPercentage() float64 {
	total := m.TotalGoal()
	if total <= 0 {
		return 0
	}
	return m.WeightLost() / total * 100
}

// BMI is the body mass index for the current weight, or 0 when height or
// current weight is unknown.
func (m Metrics) BMI() float64 {
	return ComputeBMI(m.CurrentWeight(), positive(m.profile.Height))
}

// ComputeBMI returns weightKg / (heightCm/100)^2, or 0 if either is not
// positive.
func ComputeBMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	h := heightCm / 100
	return weightKg / (h * h)
}

// BMICategory classifies a BMI value. Each threshold belongs to the higher
// category: 18.5 is normal, 25 overweight, 30 obese.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// RecordDelta pairs a record with its change from the previous record.
// Delta is previous minus current weight, so positive means weight lost;
// it is 0 for the first record.
type RecordDelta struct {
	WeightRecord
	Delta float64 `json:"delta"`
}

// RecordDeltas returns every record in chronological order with its delta.
func (m Metrics) RecordDeltas() []RecordDelta {
	out := make([]RecordDelta, 0, len(m.records))
	for i, r := range m.records {
		d := RecordDelta{WeightRecord: r}
		if i > 0 {
			d.Delta = m.records[i-1].Weight - r.Weight
		}
		out = append(out, d)
	}
	return out
}

// ProgressSummary bundles all derived metrics for presentation.
type ProgressSummary struct {
	RecordCount        int     `json:"recordCount"`
	CurrentWeight      float64 `json:"currentWeight"`
	InitialWeight      float64 `json:"initialWeight"`
	TargetWeight       float64 `json:"targetWeight"`
	WeightLost         float64 `json:"weightLost"`
	WeightToGo         float64 `json:"weightToGo"`
	TotalGoal          float64 `json:"totalGoal"`
	ProgressPercentage float64 `json:"progressPercentage"`
	BMI                float64 `json:"bmi"`
	BMICategory        string  `json:"bmiCategory"`
}

// Summary computes every metric at once. BMICategory is empty when the BMI
// is unknown.
func (m Metrics) Summary() ProgressSummary {
	s := ProgressSummary{
		RecordCount:        len(m.records),
		CurrentWeight:      m.CurrentWeight(),
		InitialWeight:      positive(m.profile.InitialWeight),
		TargetWeight:       positive(m.profile.TargetWeight),
		WeightLost:         m.WeightLost(),
		WeightToGo:         m.WeightToGo(),
		TotalGoal:          m.TotalGoal(),
		ProgressPercentage: m.ProgressPercentage(),
		BMI:                m.BMI(),
	}
	if s.BMI > 0 {
		s.BMICategory = BMICategory(s.BMI)
	}
	return s
}

func positive(v *float64) float64 {
	if v == nil || *v <= 0 {
		return 0
	}
	return *v
}
