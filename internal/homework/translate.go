package homework

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"homework_bot/internal/model"
)

// Verdicts maps every known review status to its verdict sentence.
var Verdicts = map[string]string{
	"approved":  "Work reviewed: the reviewer liked everything. Hooray!",
	"reviewing": "Work has been taken up for review by the reviewer.",
	"rejected":  "Work reviewed: the reviewer has comments.",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeRecord converts the latest element of a Snapshot into a HomeworkRecord.
// The homework name is read from "homework_name", falling back to "name".
// A malformed date_updated never fails decoding.
func DecodeRecord(v any) (model.HomeworkRecord, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return model.HomeworkRecord{}, fmt.Errorf("%w: record is %s, want object", ErrInvalidRecord, typeName(v))
	}

	var rec model.HomeworkRecord
	var err error
	if _, ok := obj["homework_name"]; ok {
		rec.Name, err = stringField(obj, "homework_name")
	} else {
		rec.Name, err = stringField(obj, "name")
	}
	if err != nil {
		return model.HomeworkRecord{}, err
	}
	if rec.Status, err = stringField(obj, "status"); err != nil {
		return model.HomeworkRecord{}, err
	}
	rec.DateUpdated = dateField(obj["date_updated"])
	return rec, nil
}

// dateField reads date_updated leniently: it is informational only, so a
// value of the wrong type is kept in printed form instead of failing the record.
func dateField(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		return fmt.Sprint(d)
	}
}

func stringField(obj map[string]any, key string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %s, want string", ErrInvalidRecord, key, typeName(v))
	}
	return s, nil
}

// Translate builds the status change message for rec.
// The message is deterministic for identical records.
func Translate(rec model.HomeworkRecord) (string, error) {
	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field()))
			}
			return "", fmt.Errorf("%w: %s", ErrMissingField, strings.Join(fields, ", "))
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	verdict, ok := Verdicts[rec.Status]
	if !ok {
		return "", fmt.Errorf("%w %q for %q (known: %s)", ErrUnknownStatus, rec.Status, rec.Name, knownStatuses())
	}
	return fmt.Sprintf("The review status of %q changed. %s", rec.Name, verdict), nil
}

func knownStatuses() string {
	keys := make([]string, 0, len(Verdicts))
	for k := range Verdicts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
