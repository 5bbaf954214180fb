package schema

// ExecStatus classifies the outcome of a tool invocation.
type ExecStatus string

const (
	StatusSuccess       ExecStatus = "success"
	StatusError         ExecStatus = "error"
	StatusConfirmNeeded ExecStatus = "confirm_needed"
)

// ExecutionResult is the uniform outcome of one tool invocation. It is
// returned synchronously to the dispatcher and never persisted beyond logging.
type ExecutionResult struct {
	Status  ExecStatus `json:"status"`
	Message string     `json:"message"`
	Data    any        `json:"data,omitempty"`
}

func Success(message string) ExecutionResult {
	return ExecutionResult{Status: StatusSuccess, Message: message}
}

func Failure(message string) ExecutionResult {
	return ExecutionResult{Status: StatusError, Message: message}
}

func ConfirmNeeded(prompt string) ExecutionResult {
	return ExecutionResult{Status: StatusConfirmNeeded, Message: prompt}
}
