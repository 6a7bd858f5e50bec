package job

import (
	"fmt"

	"mcfsolver/internal/mcf"
	"mcfsolver/pkg/apperror"
)

// Validate checks a Description for the structural problems that would
// otherwise surface as a confusing panic deep inside the solver: duplicate
// or missing stations, links and demands that reference an unknown station,
// self-loop links, and out-of-range settings. It returns every problem found
// rather than stopping at the first one.
func Validate(desc *Description) *apperror.ValidationErrors {
	v := apperror.NewValidationErrors()

	if desc == nil {
		v.AddError(apperror.CodeNilInput, "job description is nil")
		return v
	}

	if len(desc.Stations) == 0 {
		v.AddError(apperror.CodeEmptyJob, "job has no stations")
		return v
	}

	seen := make(map[string]bool, len(desc.Stations))
	for i, s := range desc.Stations {
		if s == "" {
			v.AddErrorWithField(apperror.CodeInvalidStation, "station name must not be empty", fmt.Sprintf("stations[%d]", i))
			continue
		}
		if seen[s] {
			v.AddErrorWithField(apperror.CodeDuplicateStation, fmt.Sprintf("duplicate station %q", s), fmt.Sprintf("stations[%d]", i))
			continue
		}
		seen[s] = true
	}

	for i, l := range desc.Links {
		field := fmt.Sprintf("links[%d]", i)
		if l.From == l.To {
			v.AddErrorWithField(apperror.CodeSelfLoop, fmt.Sprintf("link %s->%s is a self-loop", l.From, l.To), field)
		}
		if !seen[l.From] {
			v.AddErrorWithField(apperror.CodeDanglingEdge, fmt.Sprintf("link references unknown station %q", l.From), field)
		}
		if !seen[l.To] {
			v.AddErrorWithField(apperror.CodeDanglingEdge, fmt.Sprintf("link references unknown station %q", l.To), field)
		}
	}

	for i, d := range desc.Demands {
		field := fmt.Sprintf("demands[%d]", i)
		if d.From == d.To {
			v.AddErrorWithField(apperror.CodeSelfLoop, fmt.Sprintf("demand %s->%s is a self-loop", d.From, d.To), field)
		}
		if !seen[d.From] {
			v.AddErrorWithField(apperror.CodeDanglingEdge, fmt.Sprintf("demand references unknown station %q", d.From), field)
		}
		if !seen[d.To] {
			v.AddErrorWithField(apperror.CodeDanglingEdge, fmt.Sprintf("demand references unknown station %q", d.To), field)
		}
		if d.Amount == 0 {
			v.AddWarning(apperror.CodeInvalidDemand, fmt.Sprintf("demand %s->%s has zero amount", d.From, d.To))
		}
	}

	if desc.Settings.Accuracy == 0 {
		v.AddErrorWithField(apperror.CodeInvalidSettings, "settings.accuracy must be >= 1", "settings.accuracy")
	}
	ms := desc.Settings.MaxSaturation
	if ms != mcf.SaturationUnlimited && (ms == 0 || ms > 100) {
		v.AddErrorWithField(apperror.CodeInvalidSettings, "settings.max_saturation must be in [1,100] or unlimited", "settings.max_saturation")
	}

	return v
}
