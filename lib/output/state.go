package output

// State is the phase of a run.
type State int32

const (
	Bootstrapping State = iota
	Running
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Bootstrapping:
		return "BOOTSTRAPPING"
	case Running:
		return "RUNNING"
	case ShuttingDown:
		return "SHUTTING_DOWN"
	case Terminated:
		return "TERMINATED"
	}
	return "UNKNOWN"
}

// Result tells apart a clean shutdown from the ways a run can fail.
type Result int32

const (
	ResultSuccess Result = iota
	ResultBootstrapFailed
	ResultShaderFailed
)

func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultBootstrapFailed:
		return "bootstrap_failed"
	case ResultShaderFailed:
		return "shader_failed"
	}
	return "unknown"
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	return int(r)
}

type StateListener func(o *GraphicsOutput, s State)
