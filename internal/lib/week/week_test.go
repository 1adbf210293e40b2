package week

import (
	"testing"
	"time"
)

func TestStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday maps to monday of same week",
			in:   time.Date(2024, time.July, 17, 15, 30, 0, 0, time.UTC),
			want: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday maps to itself",
			in:   time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday maps to previous monday",
			in:   time.Date(2024, time.July, 21, 23, 59, 0, 0, time.UTC),
			want: time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "week spanning month boundary",
			in:   time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.July, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Start(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Start(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
