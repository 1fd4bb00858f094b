package model

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// PipelineState is a state of the grade pipeline.
type PipelineState int

const (
	// StateIdle is the initial state.
	StateIdle PipelineState = iota
	// StateConfigResolved means the configuration was loaded.
	StateConfigResolved
	// StateSourceOpened means the grades file is open.
	StateSourceOpened
	// StateComputed means every row was scored.
	StateComputed
	// StateWritten means the results were persisted.
	StateWritten
	// StateDone means every resource was released after a successful run.
	StateDone
	// StateFailed is terminal and reachable from any state.
	StateFailed
)

func (s PipelineState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfigResolved:
		return "config-resolved"
	case StateSourceOpened:
		return "source-opened"
	case StateComputed:
		return "computed"
	case StateWritten:
		return "written"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalYAML writes the state by name.
func (s PipelineState) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML reads a state written by MarshalYAML.
func (s *PipelineState) UnmarshalYAML(value *yaml.Node) error {
	for state := StateIdle; state <= StateFailed; state++ {
		if state.String() == value.Value {
			*s = state
			return nil
		}
	}

	return fmt.Errorf("unknown pipeline state %q", value.Value)
}

// RunReport summarizes a pipeline run.
type RunReport struct {
	ConfigFile  Path          `yaml:"config_file,omitempty"`
	GradesFile  Path          `yaml:"grades_file,omitempty"`
	OutputFile  Path          `yaml:"output_file,omitempty"`
	Policy      string        `yaml:"policy,omitempty"`
	State       PipelineState `yaml:"state"`
	FailedIn    PipelineState `yaml:"failed_in,omitempty"`
	RowsRead    int           `yaml:"rows_read"`
	RowsSkipped int           `yaml:"rows_skipped"`
	RowsWritten int           `yaml:"rows_written"`
	RowErrors   []RowError    `yaml:"row_errors,omitempty"`
	Message     string        `yaml:"error,omitempty"`
	StartedAt   time.Time     `yaml:"started_at"`
	FinishedAt  time.Time     `yaml:"finished_at"`

	Err     error       `yaml:"-"`
	Results []GpaResult `yaml:"-"`
}

// Successful reports whether the run reached StateDone.
func (r RunReport) Successful() bool {
	return r.State == StateDone && r.Err == nil
}
