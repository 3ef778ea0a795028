package timectx

import (
	"testing"
	"time"
)

// date builds a local time on a fixed calendar date plus the given weekday offset.
// 2026-03-02 is a Monday.
func date(dayOffset, hour, minute int) time.Time {
	return time.Date(2026, 3, 2+dayOffset, hour, minute, 0, 0, time.Local)
}

func TestResolve_TimeOfDayBoundaries(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want TimeOfDay
	}{
		{name: "start of morning", hour: 6, want: Morning},
		{name: "late morning", hour: 11, want: Morning},
		{name: "start of afternoon", hour: 12, want: Afternoon},
		{name: "late afternoon", hour: 17, want: Afternoon},
		{name: "start of evening", hour: 18, want: Evening},
		{name: "late evening", hour: 21, want: Evening},
		{name: "start of night", hour: 22, want: Night},
		{name: "midnight", hour: 0, want: Night},
		{name: "pre-dawn", hour: 5, want: Night},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Resolve(date(0, tt.hour, 0))
			if ctx.TimeOfDay != tt.want {
				t.Errorf("Resolve(%02d:00).TimeOfDay = %q, want %q", tt.hour, ctx.TimeOfDay, tt.want)
			}
			if ctx.Hour != tt.hour {
				t.Errorf("Resolve(%02d:00).Hour = %d, want %d", tt.hour, ctx.Hour, tt.hour)
			}
		})
	}
}

func TestResolve_NightWrapsMidnight(t *testing.T) {
	for _, hour := range []int{22, 23, 0, 1, 5} {
		if got := Resolve(date(0, hour, 30)).TimeOfDay; got != Night {
			t.Errorf("Resolve(%02d:30).TimeOfDay = %q, want night", hour, got)
		}
	}
}

func TestResolve_Weekday(t *testing.T) {
	tests := []struct {
		name        string
		dayOffset   int // days after Monday 2026-03-02
		wantWeekday int
		wantWeekend bool
	}{
		{name: "monday", dayOffset: 0, wantWeekday: 0, wantWeekend: false},
		{name: "wednesday", dayOffset: 2, wantWeekday: 2, wantWeekend: false},
		{name: "friday", dayOffset: 4, wantWeekday: 4, wantWeekend: false},
		{name: "saturday", dayOffset: 5, wantWeekday: 5, wantWeekend: true},
		{name: "sunday", dayOffset: 6, wantWeekday: 6, wantWeekend: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Resolve(date(tt.dayOffset, 10, 0))
			if ctx.Weekday != tt.wantWeekday {
				t.Errorf("Weekday = %d, want %d", ctx.Weekday, tt.wantWeekday)
			}
			if ctx.IsWeekend != tt.wantWeekend {
				t.Errorf("IsWeekend = %v, want %v", ctx.IsWeekend, tt.wantWeekend)
			}
		})
	}
}

func TestResolve_Pure(t *testing.T) {
	now := date(3, 14, 15)
	a := Resolve(now)
	b := Resolve(now)
	if a != b {
		t.Errorf("Resolve is not deterministic: %+v != %+v", a, b)
	}
}
