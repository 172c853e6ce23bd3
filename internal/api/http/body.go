package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxBodyBytes = 4 << 20

var errNotObject = errors.New("request body must be a JSON object")

// readBody reads exactly Content-Length bytes. A missing length is an empty body.
func readBody(r *http.Request) ([]byte, error) {
	n := r.ContentLength
	if n <= 0 {
		return nil, nil
	}
	if n > maxBodyBytes {
		return nil, fmt.Errorf("request body too large: %d bytes", n)
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(r.Body, buf); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf, nil
}

// decodeObject parses the body as a single JSON object.
func decodeObject(r *http.Request, v interface{}) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}

	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
