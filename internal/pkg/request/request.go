package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads one JSON document into v. Any read or syntax problem,
// including an empty body, is ErrInvalidJSON.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", entity.ErrInvalidJSON, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON body", entity.ErrInvalidJSON)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON body", entity.ErrInvalidJSON)
	}
	return nil
}
