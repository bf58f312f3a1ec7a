package calendar

import (
	"errors"
	"testing"
	"time"
)

func TestDateKeyString(t *testing.T) {
	tests := []struct {
		key  DateKey
		want string
	}{
		{NewDateKey(15, 6, 2025), "15/06/2025"},
		{NewDateKey(1, 1, 2024), "01/01/2024"},
		{NewDateKey(31, 12, 999), "31/12/0999"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDateKeyEquality(t *testing.T) {
	a := NewDateKey(3, 4, 2025)
	b := KeyFor(time.Date(2025, time.April, 3, 18, 30, 0, 0, time.Local))
	if a != b {
		t.Errorf("%v != %v", a, b)
	}
	if a == NewDateKey(4, 3, 2025) {
		t.Error("day and month must not be interchangeable")
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		input   string
		want    DateKey
		wantErr bool
	}{
		{input: "15/06/2025", want: NewDateKey(15, 6, 2025)},
		{input: " 1/2/2024 ", want: NewDateKey(1, 2, 2024)},
		{input: "29/02/2024", want: NewDateKey(29, 2, 2024)},
		{input: "29/02/2023", wantErr: true},
		{input: "00/01/2024", wantErr: true},
		{input: "01/13/2024", wantErr: true},
		{input: "2024-01-01", wantErr: true},
		{input: "aa/01/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateKey(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateKey) {
					t.Errorf("err = %v, want ErrInvalidDateKey", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateKeyBefore(t *testing.T) {
	if !NewDateKey(31, 12, 2024).Before(NewDateKey(1, 1, 2025)) {
		t.Error("year ordering")
	}
	if !NewDateKey(30, 1, 2025).Before(NewDateKey(1, 2, 2025)) {
		t.Error("month ordering")
	}
	if NewDateKey(2, 2, 2025).Before(NewDateKey(2, 2, 2025)) {
		t.Error("equal keys are not ordered")
	}
}
