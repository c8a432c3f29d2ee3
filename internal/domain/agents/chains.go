package agents

import (
	"fmt"

	"github.com/bryanwahyu/hemolab/internal/domain/analysis"
)

// chains maps each analysis type to its ordered task chain. The comprehensive
// order (medical, nutrition, exercise) is identical for anonymous and
// identified users.
var chains = map[analysis.Type][]TaskName{
	analysis.TypeVerification:  {TaskVerification},
	analysis.TypeMedical:       {TaskMedical},
	analysis.TypeNutrition:     {TaskNutrition},
	analysis.TypeExercise:      {TaskExercise},
	analysis.TypeComprehensive: {TaskMedical, TaskNutrition, TaskExercise},
}

// Chain resolves the task chain for an analysis type. Unknown types are
// rejected here so no agent ever runs for them.
func Chain(t analysis.Type) ([]Task, error) {
	names, ok := chains[t]
	if !ok {
		return nil, &analysis.ValidationError{Field: "analysis_type", Reason: fmt.Sprintf("no task chain for type %q", t)}
	}
	out := make([]Task, 0, len(names))
	for _, n := range names {
		task, ok := Tasks[n]
		if !ok {
			return nil, fmt.Errorf("task chain for %q references unknown task %q", t, n)
		}
		out = append(out, task)
	}
	return out, nil
}
