package homework

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	hw1 := map[string]any{"homework_name": "HW1", "status": "approved"}
	hw0 := map[string]any{"homework_name": "HW0", "status": "rejected"}

	tests := []struct {
		name    string
		raw     any
		want    Snapshot
		wantErr error
	}{
		{
			name:    "null payload",
			raw:     nil,
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "empty object",
			raw:     map[string]any{},
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "root is a list",
			raw:     []any{hw1},
			wantErr: ErrWrongShape,
		},
		{
			name:    "homeworks is not a list",
			raw:     map[string]any{"homeworks": "not-a-list"},
			wantErr: ErrWrongShape,
		},
		{
			name:    "homeworks is an object",
			raw:     map[string]any{"homeworks": hw1, "current_date": json.Number("10")},
			wantErr: ErrWrongShape,
		},
		{
			name:    "homeworks absent",
			raw:     map[string]any{"current_date": json.Number("10")},
			wantErr: ErrMissingField,
		},
		{
			name: "empty homeworks is not an error",
			raw:  map[string]any{"homeworks": []any{}, "current_date": json.Number("1700000000")},
			want: Snapshot{Empty: true, CurrentDate: 1700000000},
		},
		{
			name: "first record is the latest",
			raw:  map[string]any{"homeworks": []any{hw1, hw0}, "current_date": json.Number("1700000000")},
			want: Snapshot{Latest: hw1, CurrentDate: 1700000000},
		},
		{
			name: "malformed element is passed through",
			raw:  map[string]any{"homeworks": []any{"oops"}, "current_date": json.Number("7")},
			want: Snapshot{Latest: "oops", CurrentDate: 7},
		},
		{
			name: "current_date absent",
			raw:  map[string]any{"homeworks": []any{hw1}},
			want: Snapshot{Latest: hw1},
		},
		{
			name: "current_date unusable",
			raw:  map[string]any{"homeworks": []any{hw1}, "current_date": "yesterday"},
			want: Snapshot{Latest: hw1},
		},
		{
			name: "current_date as float",
			raw:  map[string]any{"homeworks": []any{}, "current_date": float64(1700000000)},
			want: Snapshot{Empty: true, CurrentDate: 1700000000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
