package server

import "net/http"

type httpError struct {
	Status  int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

var (
	errMissingInput = &httpError{
		Status:  http.StatusBadRequest,
		Message: "Missing required field",
	}

	errInvalidPath = &httpError{
		Status:  http.StatusBadRequest,
		Message: "Invalid path",
	}

	errNotFound = &httpError{
		Status:  http.StatusNotFound,
		Message: "Not found",
	}
)

// asNotFound downgrades an invalid-path rejection to a plain not-found for
// lookup contexts, where the client should not learn whether the target was
// rejected or simply absent.
func asNotFound(err error) error {
	if err == errInvalidPath {
		return errNotFound
	}

	return err
}
