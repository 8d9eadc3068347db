package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// requestError is a malformed request; it renders as-is.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, message: fmt.Sprintf(format, args...)}
}

// requestBody holds the top-level members of a JSON object body. A body
// that is empty or not a JSON object has no members, so every required field
// reports as missing.
type requestBody map[string]json.RawMessage

func readBody(r *http.Request) (requestBody, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, message: "request body too large"}
		}
		return nil, err
	}

	body := requestBody{}
	if err := json.Unmarshal(data, &body); err != nil {
		return requestBody{}, nil
	}
	return body, nil
}

// String returns the required string member name. JSON null counts as
// missing.
func (b requestBody) String(name string) (string, error) {
	raw, ok := b[name]
	if !ok || string(raw) == "null" {
		return "", badRequest("field %q: required in body but not found", name)
	}

	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", badRequest("field %q: wrong type. expected: string", name)
	}
	return v, nil
}

// requireStrings reads several required members, failing on the first bad one.
func (b requestBody) requireStrings(names ...string) ([]string, error) {
	out := make([]string, len(names))
	for i, name := range names {
		v, err := b.String(name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// queryString returns the required querystring parameter name. A present but
// empty parameter is returned as "".
func queryString(r *http.Request, name string) (string, error) {
	q := r.URL.Query()
	if !q.Has(name) {
		return "", badRequest("field %q: required in querystring but not found", name)
	}
	return q.Get(name), nil
}
