// Package wizard runs ordered sequences of named steps.
package wizard

// Step defines one named action in a sequence.
type Step struct {
	Name string
	Run  func() error
}

// RunSteps executes steps in order, reporting transitions through the
// optional callbacks. The first failing step aborts the sequence and its
// error is returned as-is; completed steps are not undone.
func RunSteps(steps []Step, onStepStart func(index, total int, name string), onStepDone func(index, total int)) error {
	total := len(steps)
	for i, step := range steps {
		if onStepStart != nil {
			onStepStart(i+1, total, step.Name)
		}
		if step.Run != nil {
			if err := step.Run(); err != nil {
				return err
			}
		}
		if onStepDone != nil {
			onStepDone(i+1, total)
		}
	}
	return nil
}
