package command

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"forward", Forward, false},
		{"backward", Backward, false},
		{"left", Left, false},
		{"right", Right, false},
		{"stop", Stop, false},
		{"Forward", "", true},
		{"up", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownDirection) {
					t.Fatalf("Parse(%q) error = %v, want ErrUnknownDirection", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	for _, d := range All() {
		t.Run(string(d), func(t *testing.T) {
			got, err := Encode(d)
			if err != nil {
				t.Fatalf("Encode(%q) error: %v", d, err)
			}
			want := `{"direction":"` + string(d) + `"}`
			if string(got) != want {
				t.Errorf("Encode(%q) = %s, want %s", d, got, want)
			}
		})
	}
}

func TestEncodeIsStable(t *testing.T) {
	first, err := Encode(Forward)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Encode(Forward)
		if err != nil {
			t.Fatal(err)
		}
		if string(again) != string(first) {
			t.Fatalf("Encode changed between calls: %s vs %s", first, again)
		}
	}
}

func TestEncodeRejectsUnknown(t *testing.T) {
	if _, err := Encode("jump"); !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("Encode(jump) error = %v, want ErrUnknownDirection", err)
	}
}
