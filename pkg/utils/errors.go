package utils

const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInfeasible = "INFEASIBLE"
	ErrCodeTimeout    = "SOLVER_TIMEOUT"
	ErrCodeSolver     = "SOLVER_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code, message string, details ...string) *AppError {
	err := &AppError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
