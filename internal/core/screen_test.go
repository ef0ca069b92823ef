package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y).Rune != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.GetCell(x, y).Rune, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.GetCell(5, 5).Rune != 'X' {
		t.Errorf("GetCell(5, 5).Rune = %q, expected 'X'", s.GetCell(5, 5).Rune)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')  // Should not panic
	s.Set(100, 0, 'A') // Should not panic
	s.Set(0, -1, 'A')  // Should not panic
	s.Set(0, 100, 'A') // Should not panic

	// Out of bounds get should return space
	if s.GetCell(-1, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0).Rune != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	// Fill with some characters
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(x, y, 'X')
		}
	}

	s.Clear()

	// Should all be spaces now
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.GetCell(x, y).Rune != ' ' {
				t.Errorf("After Clear, expected space at (%d, %d), got %q", x, y, s.GetCell(x, y).Rune)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	expected := "Hello"
	for i, ch := range expected {
		if s.GetCell(2+i, 1).Rune != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, s.GetCell(2+i, 1).Rune)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello") // Only "He" should fit
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	text := "Hi"
	s.DrawTextCentered(2, text)

	// "Hi" is 2 chars, centered in 20 chars should start at position 9
	x := (20 - 2) / 2
	if s.GetCell(x, 2).Rune != 'H' || s.GetCell(x+1, 2).Rune != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	r := NewRect(2, 2, 3, 3)
	s.DrawRect(r, '#')

	// Check filled area
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if s.GetCell(x, y).Rune != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, s.GetCell(x, y).Rune)
			}
		}
	}

	// Check outside is still space
	if s.GetCell(1, 1).Rune != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
	if s.GetCell(5, 5).Rune != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	r := NewRect(1, 1, 5, 4)
	s.DrawBox(r)

	// Check corners
	if s.GetCell(1, 1).Rune != '┌' {
		t.Errorf("Top-left corner should be '┌', got %q", s.GetCell(1, 1).Rune)
	}
	if s.GetCell(5, 1).Rune != '┐' {
		t.Errorf("Top-right corner should be '┐', got %q", s.GetCell(5, 1).Rune)
	}
	if s.GetCell(1, 4).Rune != '└' {
		t.Errorf("Bottom-left corner should be '└', got %q", s.GetCell(1, 4).Rune)
	}
	if s.GetCell(5, 4).Rune != '┘' {
		t.Errorf("Bottom-right corner should be '┘', got %q", s.GetCell(5, 4).Rune)
	}

	// Check horizontal edges
	for x := 2; x < 5; x++ {
		if s.GetCell(x, 1).Rune != '─' {
			t.Errorf("Top edge should be '─' at x=%d, got %q", x, s.GetCell(x, 1).Rune)
		}
		if s.GetCell(x, 4).Rune != '─' {
			t.Errorf("Bottom edge should be '─' at x=%d, got %q", x, s.GetCell(x, 4).Rune)
		}
	}

	// Check vertical edges
	for y := 2; y < 4; y++ {
		if s.GetCell(1, y).Rune != '│' {
			t.Errorf("Left edge should be '│' at y=%d, got %q", y, s.GetCell(1, y).Rune)
		}
		if s.GetCell(5, y).Rune != '│' {
			t.Errorf("Right edge should be '│' at y=%d, got %q", y, s.GetCell(5, y).Rune)
		}
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawHLine(2, 2, 5, '-')

	for x := 2; x < 7; x++ {
		if s.GetCell(x, 2).Rune != '-' {
			t.Errorf("DrawHLine: expected '-' at (%d, 2), got %q", x, s.GetCell(x, 2).Rune)
		}
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(2, 1, '@', ColorRed)

	cell := s.GetCell(2, 1)
	if cell.Rune != '@' || cell.Color != ColorRed {
		t.Errorf("GetCell(2, 1) = %+v, expected '@' in red", cell)
	}

	s.DrawTextColored(0, 0, "ab", ColorGreen)
	if s.GetCell(1, 0).Color != ColorGreen {
		t.Errorf("DrawTextColored should color every rune, got %v", s.GetCell(1, 0).Color)
	}

	if c := s.GetCell(50, 50); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("Out of bounds GetCell = %+v, expected blank", c)
	}

	s.Clear()
	if s.GetCell(2, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	result := s.String()
	expected := "AAAAA\nBBBBB\nCCCCC"

	if result != expected {
		t.Errorf("String() = %q, expected %q", result, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.DrawText(0, 5, "World")

	// Resize smaller - should preserve top-left content
	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}

	row0 := s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", row0)
	}

	// Resize larger - old content should still be there
	s.Resize(15, 8)
	row0 = s.Row(0)
	if !strings.HasPrefix(row0, "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", row0)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	// Out of bounds row
	outOfBounds := s.Row(-1)
	if outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}
