package domain

import (
	"testing"
	"time"
)

func TestWorkTime(t *testing.T) {
	t0 := at(9, 0)

	tests := []struct {
		name    string
		session Session
		now     time.Time
		want    time.Duration
	}{
		{
			name:    "not started",
			session: Session{},
			now:     at(10, 0),
			want:    0,
		},
		{
			name:    "working without breaks",
			session: Session{Working: true, WorkStart: t0},
			now:     at(11, 30),
			want:    150 * time.Minute,
		},
		{
			name: "one completed break",
			session: Session{
				Working:   true,
				WorkStart: t0,
				Breaks:    []Break{{Start: at(10, 0), End: at(10, 20)}},
			},
			now:  at(12, 0),
			want: 3*time.Hour - 20*time.Minute,
		},
		{
			name: "break in progress",
			session: Session{
				Working:           true,
				OnBreak:           true,
				WorkStart:         t0,
				CurrentBreakStart: at(11, 0),
			},
			now:  at(11, 45),
			want: 2 * time.Hour,
		},
		{
			name: "ended session ignores now",
			session: Session{
				WorkStart: t0,
				WorkEnd:   at(17, 0),
				Breaks:    []Break{{Start: at(12, 0), End: at(12, 30)}},
			},
			now:  at(23, 0),
			want: 7*time.Hour + 30*time.Minute,
		},
		{
			name: "negative clamps to zero",
			session: Session{
				Working:   true,
				WorkStart: t0,
				Breaks:    []Break{{Start: at(8, 0), End: at(10, 0)}},
			},
			now:  at(9, 30),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkTime(tt.session, tt.now); got != tt.want {
				t.Errorf("WorkTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorkTime_SingleBreakProperty(t *testing.T) {
	t0 := at(8, 0)
	for d := time.Duration(0); d <= 10*time.Hour; d += 17 * time.Minute {
		for _, bl := range []time.Duration{0, time.Minute, 45 * time.Minute, 3 * time.Hour} {
			s := Session{
				Working:   true,
				WorkStart: t0,
				Breaks:    []Break{{Start: t0.Add(time.Hour), End: t0.Add(time.Hour + bl)}},
			}
			want := d - bl
			if want < 0 {
				want = 0
			}
			if got := WorkTime(s, t0.Add(d)); got != want {
				t.Fatalf("WorkTime(D=%v, break=%v) = %v, want %v", d, bl, got, want)
			}
		}
	}
}

func TestTakeSnapshot(t *testing.T) {
	s := Session{
		Working:           true,
		OnBreak:           true,
		WorkStart:         at(9, 0),
		CurrentBreakStart: at(10, 0),
		Breaks:            []Break{{Start: at(9, 30), End: at(9, 40)}},
		CategoryID:        "meeting",
	}

	snap := TakeSnapshot(s, at(10, 5))
	if snap.State != StateOnBreak {
		t.Errorf("State = %v, want on break", snap.State)
	}
	if snap.Work != 50*time.Minute {
		t.Errorf("Work = %v, want 50m", snap.Work)
	}
	if snap.Break != 5*time.Minute {
		t.Errorf("Break = %v, want 5m", snap.Break)
	}
	if snap.TotalBreak != 15*time.Minute {
		t.Errorf("TotalBreak = %v, want 15m", snap.TotalBreak)
	}
	if got := snap.WorkClock.String(); got != "00:50:00" {
		t.Errorf("WorkClock = %q, want 00:50:00", got)
	}
}
