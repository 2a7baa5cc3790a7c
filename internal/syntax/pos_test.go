package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("model.swift", 10, 5),
			wantStr: "model.swift:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5),
			wantStr: "10:5",
		},
		{
			name:    "line 1 col 1",
			pos:     NewPos("main.swift", 1, 1),
			wantStr: "main.swift:1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos("main.swift", 1, 1), true},
		{"no filename", NewPos("", 100, 50), true},
		{"zero line", NewPos("main.swift", 0, 1), false},
		{"zero value", Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParsePos(t *testing.T) {
	tests := []struct {
		in      string
		want    Pos
		wantErr bool
	}{
		{in: "", want: NoPos},
		{in: "main.swift:3:7", want: NewPos("main.swift", 3, 7)},
		{in: "main.swift:3", want: NewPos("main.swift", 3, 0)},
		{in: "3:7", want: NewPos("", 3, 7)},
		{in: "C:/src/main.swift:1:2", want: NewPos("C:/src/main.swift", 1, 2)},
		{in: "main.swift", wantErr: true},
		{in: "main.swift:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePos(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePos(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePos(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParsePos(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPosBefore(t *testing.T) {
	a := NewPos("a.swift", 2, 1)
	b := NewPos("a.swift", 2, 4)
	c := NewPos("b.swift", 1, 1)

	if !a.Before(b) || b.Before(a) {
		t.Errorf("column ordering wrong for %v / %v", a, b)
	}
	if !b.Before(c) {
		t.Errorf("%v should sort before %v", b, c)
	}
	if a.Before(a) {
		t.Errorf("%v should not sort before itself", a)
	}
}
