package battery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePmset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{
			name: "Discharging",
			input: `Now drawing from 'Battery Power'
 -InternalBattery-0 (id=4653155)	85%; discharging; 4:20 remaining present: true
`,
			want: Status{Percent: 85, OnBattery: true},
		},
		{
			name: "Charging on AC",
			input: `Now drawing from 'AC Power'
 -InternalBattery-0 (id=4653155)	42%; charging; 1:10 remaining present: true
`,
			want: Status{Percent: 42, Charging: true},
		},
		{
			name: "Charged",
			input: `Now drawing from 'AC Power'
 -InternalBattery-0 (id=4653155)	100%; charged; 0:00 remaining present: true
`,
			want: Status{Percent: 100},
		},
		{
			name: "AC attached not charging",
			input: `Now drawing from 'AC Power'
 -InternalBattery-0 (id=4653155)	80%; AC attached; not charging present: true
`,
			want: Status{Percent: 80},
		},
		{
			name:  "No source line",
			input: ` -InternalBattery-0 (id=1)	9%; discharging; (no estimate) present: true`,
			want:  Status{Percent: 9, OnBattery: true},
		},
		{
			name:    "Desktop without battery",
			input:   "Now drawing from 'AC Power'\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePmset(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoBattery)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSysfs(t *testing.T) {
	tests := []struct {
		name     string
		capacity string
		status   string
		want     Status
		wantErr  bool
	}{
		{name: "Discharging", capacity: "55", status: "Discharging", want: Status{Percent: 55, OnBattery: true}},
		{name: "Charging", capacity: "12", status: "Charging", want: Status{Percent: 12, Charging: true}},
		{name: "Full", capacity: "100", status: "Full", want: Status{Percent: 100}},
		{name: "Over range", capacity: "104", status: "Not charging", want: Status{Percent: 100}},
		{name: "Garbage", capacity: "abc", status: "Discharging", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSysfs(tt.capacity, tt.status)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
