package orbit

import (
	"encoding/json"
	"fmt"
)

// scriptTickDt is the fixed per-frame delta used by ScriptRunner.
const scriptTickDt = 1.0 / 60.0

// scriptStep represents a single action in an interaction script.
type scriptStep struct {
	Action string  `json:"action"`
	Count  int     `json:"count,omitempty"`
	Seed   uint64  `json:"seed,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
	On     bool    `json:"on,omitempty"`
}

// interactionScript is the top-level JSON structure for a script.
type interactionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a JSON interaction script against an Engine for
// deterministic automation: one action per frame, each frame followed
// by a tick at 60 Hz.
//
// Supported actions: "generate" (count, optional seed), "add", "move"
// (x, y), "click" (x, y), "delete" (removes the selection), "clear",
// "labels" (on), and "wait" (frames).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON interaction script. Unknown actions are
// rejected at load time.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script interactionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("orbit: parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("orbit: parse script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "generate", "add", "move", "click", "delete", "clear", "labels", "wait":
		default:
			return nil, fmt.Errorf("orbit: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step executes the next pending action, then ticks the engine once
// with the given camera. Call once per frame until Done reports true;
// further calls keep ticking without executing actions.
func (r *ScriptRunner) Step(e *Engine, cam CameraState) error {
	if err := r.execute(e); err != nil {
		return err
	}
	return e.Tick(scriptTickDt, cam)
}

func (r *ScriptRunner) execute(e *Engine) error {
	if r.done {
		return nil
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "generate":
		if st.Seed != 0 {
			err = e.GenerateSeeded(st.Count, st.Seed)
		} else {
			err = e.Generate(st.Count)
		}
	case "add":
		e.AddRandom()
	case "move":
		e.HandlePointerMove(st.X, st.Y)
	case "click":
		e.HandlePointerDown(st.X, st.Y)
	case "delete":
		err = e.RemoveSelected()
	case "clear":
		e.Clear()
	case "labels":
		e.SetShowAllLabels(st.On)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	if err != nil {
		return fmt.Errorf("orbit: script step %d (%s): %w", r.cursor-1, st.Action, err)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return nil
}
