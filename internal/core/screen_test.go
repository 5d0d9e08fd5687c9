package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	want := strings.Join([]string{"      ", "      ", "      "}, "\n")
	if s.String() != want {
		t.Errorf("String() = %q, expected %q", s.String(), want)
	}
}

func TestScreenCells(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 2, 'o')
	s.SetColored(3, 3, 'O', ColorOrange)

	tests := []struct {
		x, y int
		want ScreenCell
	}{
		{1, 2, ScreenCell{Rune: 'o', Color: ColorDefault}},
		{3, 3, ScreenCell{Rune: 'O', Color: ColorOrange}},
		{0, 0, ScreenCell{Rune: ' '}},
		{-1, 0, ScreenCell{Rune: ' '}},
		{4, 0, ScreenCell{Rune: ' '}},
		{0, 4, ScreenCell{Rune: ' '}},
	}
	for _, tc := range tests {
		if got := s.GetCell(tc.x, tc.y); got != tc.want {
			t.Errorf("GetCell(%d, %d) = %+v, expected %+v", tc.x, tc.y, got, tc.want)
		}
		if got := s.Get(tc.x, tc.y); got != tc.want.Rune {
			t.Errorf("Get(%d, %d) = %q, expected %q", tc.x, tc.y, got, tc.want.Rune)
		}
	}

	// Writes outside the buffer are dropped
	s.Set(-1, -1, 'x')
	s.SetColored(4, 4, 'x', ColorRed)
	if strings.ContainsRune(s.String(), 'x') {
		t.Error("out-of-bounds writes should be ignored")
	}
}

func TestScreenFillAndClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetColored(0, 0, '*', ColorGreen)

	s.Fill('.')
	if s.String() != "...\n..." {
		t.Errorf("after Fill: %q", s.String())
	}
	if s.GetCell(0, 0).Color != ColorDefault {
		t.Error("Fill should drop colours")
	}

	s.Clear()
	if s.String() != "   \n   " {
		t.Errorf("after Clear: %q", s.String())
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawText(2, 0, "abc")
	s.DrawText(9, 1, "clipped")
	s.DrawTextCentered(2, "mid")

	want := strings.Join([]string{
		"  abc       ",
		"         cli",
		"    mid     ",
	}, "\n")
	if s.String() != want {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), want)
	}

	// Centering counts runes, not bytes
	s.Clear()
	s.DrawTextCentered(0, "─ab─")
	if s.Get(4, 0) != '─' || s.Get(7, 0) != '─' {
		t.Errorf("multi-byte text centred wrongly: %q", s.String())
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 5, 3))

	want := strings.Join([]string{
		"┌───┐ ",
		"│   │ ",
		"└───┘ ",
		"      ",
	}, "\n")
	if s.String() != want {
		t.Errorf("DrawBox:\n%s\nexpected\n%s", s.String(), want)
	}
}
