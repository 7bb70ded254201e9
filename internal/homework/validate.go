// Package homework validates status API payloads and turns homework records
// into notification text.
package homework

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Validation and translation failures.
var (
	ErrEmptyResponse = errors.New("empty response")
	ErrWrongShape    = errors.New("unexpected response shape")
	ErrMissingField  = errors.New("missing field")
	ErrInvalidRecord = errors.New("invalid homework record")
	ErrUnknownStatus = errors.New("unknown homework status")
)

// Snapshot is a validated API response.
type Snapshot struct {
	// Latest is the first element of homeworks, not yet checked for shape.
	// Nil when Empty is true.
	Latest any
	// Empty reports that the API had no new homework since the cursor.
	Empty bool
	// CurrentDate is the server time of the response; zero when absent or unusable.
	CurrentDate int64
}

// Validate checks the shape of a decoded API response.
// An empty homeworks list is not an error; it yields Snapshot.Empty.
func Validate(raw any) (Snapshot, error) {
	if raw == nil {
		return Snapshot{}, fmt.Errorf("%w: null payload", ErrEmptyResponse)
	}
	root, ok := raw.(map[string]any)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: root is %s, want object", ErrWrongShape, typeName(raw))
	}
	if len(root) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no keys in payload", ErrEmptyResponse)
	}

	field, ok := root["homeworks"]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: homeworks", ErrMissingField)
	}
	homeworks, ok := field.([]any)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: homeworks is %s, want list", ErrWrongShape, typeName(field))
	}

	snap := Snapshot{CurrentDate: currentDate(root["current_date"])}
	if len(homeworks) == 0 {
		snap.Empty = true
		return snap, nil
	}
	snap.Latest = homeworks[0]
	return snap, nil
}

func currentDate(v any) int64 {
	switch d := v.(type) {
	case json.Number:
		n, err := d.Int64()
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int64(d)
	case string:
		n, err := strconv.ParseInt(d, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
