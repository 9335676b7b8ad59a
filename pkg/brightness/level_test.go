package brightness

import (
	"math"
	"testing"
)

var parseLevelTests = []struct {
	expr    string
	current float64
	want    float64
	wantErr bool
}{
	{expr: "40%", current: 0.9, want: 0.4},
	{expr: " 100% ", current: 0, want: 1},
	{expr: "+5%", current: 0.5, want: 0.55},
	{expr: "-10%", current: 0.5, want: 0.4},
	{expr: "-10%", current: 0.05, want: 0},
	{expr: "+50%", current: 0.8, want: 1},
	{expr: "0.25", current: 1, want: 0.25},
	{expr: "1", current: 0, want: 1},
	{expr: "75", current: 0, want: 0.75},
	{expr: "250", current: 0, want: 1},
	{expr: "+0.1", current: 0.3, want: 0.4},
	{expr: "-20", current: 0.3, want: 0.1},
	{expr: "current*0.5", current: 0.8, want: 0.4},
	{expr: "(percent - 10) / 100", current: 0.5, want: 0.4},
	{expr: "current * 3", current: 0.5, want: 1},
	{expr: "", wantErr: true},
	{expr: "%", wantErr: true},
	{expr: "bright", wantErr: true},
	{expr: "current > 0.5", current: 0.7, wantErr: true},
	{expr: "current / 0", current: 0.7, wantErr: true},
}

func TestParseLevel(t *testing.T) {
	for _, test := range parseLevelTests {
		got, err := ParseLevel(test.expr, test.current)
		if (err != nil) != test.wantErr {
			t.Errorf("unexpected error for %q: got:%v wantErr:%t", test.expr, err, test.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("unexpected level for %q at %v: got:%v want:%v", test.expr, test.current, got, test.want)
		}
	}
}
