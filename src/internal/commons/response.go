package commons

// ErrorResponse is the body written for every rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
	Path  string `json:"path"`
}

func NewErrorResponse(message string, code int, path string) ErrorResponse {
	return ErrorResponse{
		Error: message,
		Code:  code,
		Path:  path,
	}
}
