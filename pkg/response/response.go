package response

// ErrorBody is the envelope returned by middleware and handlers on failure.
type ErrorBody struct {
	Success bool      `json:"success"`
	Error   ErrorInfo `json:"error"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(code, message string, details any) ErrorBody {
	return ErrorBody{
		Success: false,
		Error: ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
