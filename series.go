package main

// Labels of the two running-total bars.
const (
	currentExposureLabel = "Current exposure"
	finalTotalLabel      = "Final Total"
)

// BuildSeries turns the contribution lists into the ordered bars of one
// variant. Every variant starts from zero and carries the "Current exposure"
// total; the full and interventions variants add the intervention bars and
// the "Final Total". The input slices are never modified.
func BuildSeries(exposures, interventions []Contribution, variant Variant) []BarRecord {
	bars := make([]BarRecord, 0, len(exposures)+len(interventions)+2)
	runningTotal := 0.0

	for _, exposure := range exposures {
		start := runningTotal
		runningTotal += exposure.Value
		if !variant.showsExposures() {
			continue // Interventions view only needs the accumulated total
		}
		bars = append(bars, BarRecord{
			Label:      exposure.Name,
			RangeStart: start,
			RangeEnd:   runningTotal,
			Magnitude:  exposure.Value,
			Kind:       KindExposure,
		})
	}

	bars = append(bars, totalBar(currentExposureLabel, runningTotal))

	if !variant.showsInterventions() {
		return bars
	}

	for _, intervention := range interventions {
		bars = append(bars, BarRecord{
			Label:      intervention.Name,
			RangeStart: runningTotal - intervention.Value,
			RangeEnd:   runningTotal,
			Magnitude:  intervention.Value,
			Kind:       KindIntervention,
		})
		runningTotal -= intervention.Value
	}

	return append(bars, totalBar(finalTotalLabel, runningTotal))
}

func totalBar(label string, total float64) BarRecord {
	return BarRecord{
		Label:      label,
		RangeStart: 0,
		RangeEnd:   total,
		Magnitude:  total,
		Kind:       KindTotal,
	}
}

// domainMaximum is 1.1 times the largest bar endpoint or enabled band value.
// Disabled bands are ignored. The result may be <= 0; NewScale rejects that.
func domainMaximum(bars []BarRecord, levels []ReferenceBand) float64 {
	maxValue := 0.0
	seen := false
	consider := func(v float64) {
		if !seen || v > maxValue {
			maxValue = v
			seen = true
		}
	}
	for _, bar := range bars {
		consider(bar.RangeStart)
		consider(bar.RangeEnd)
	}
	for _, level := range levels {
		if level.Enabled {
			consider(level.Value)
		}
	}
	return maxValue * 1.1
}
