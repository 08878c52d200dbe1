package layout

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCalculate_WideScreen(t *testing.T) {
	l := Calculate(160, 40, true)

	if l.SinglePanel || l.TwoPanelMode {
		t.Fatalf("expected three panels at 160 cols, got single=%v two=%v", l.SinglePanel, l.TwoPanelMode)
	}
	if l.HistoryWidth < minHistoryWidth || l.HistoryWidth > maxHistoryWidth {
		t.Errorf("history width %d outside [%d, %d]", l.HistoryWidth, minHistoryWidth, maxHistoryWidth)
	}
	if total := l.HistoryWidth + l.InputWidth + l.OutputWidth; total != 160 {
		t.Errorf("panel widths should sum to 160, got %d", total)
	}
	if l.ContentHeight != 38 {
		t.Errorf("ContentHeight = %d, want 38", l.ContentHeight)
	}
}

func TestCalculate_Breakpoints(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		single  bool
		two     bool
		history bool
	}{
		{"narrow", 50, true, false, false},
		{"medium", 80, false, true, false},
		{"wide", 120, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.width, 30, true)
			if l.SinglePanel != tt.single {
				t.Errorf("SinglePanel = %v, want %v", l.SinglePanel, tt.single)
			}
			if l.TwoPanelMode != tt.two {
				t.Errorf("TwoPanelMode = %v, want %v", l.TwoPanelMode, tt.two)
			}
			if l.HistoryVisible != tt.history {
				t.Errorf("HistoryVisible = %v, want %v", l.HistoryVisible, tt.history)
			}
		})
	}
}

func TestCalculate_HistoryHidden(t *testing.T) {
	l := Calculate(160, 40, false)

	if l.HistoryWidth != 0 {
		t.Error("history width should be 0 when hidden")
	}
	if total := l.InputWidth + l.OutputWidth; total != 160 {
		t.Errorf("input+output should sum to 160, got %d", total)
	}
}

func TestCalculate_TinyHeight(t *testing.T) {
	l := Calculate(80, 1, false)
	if l.ContentHeight != 1 {
		t.Errorf("ContentHeight = %d, want 1", l.ContentHeight)
	}
}

func TestHandleResize(t *testing.T) {
	l := HandleResize(tea.WindowSizeMsg{Width: 140, Height: 30}, true)
	if l.Width != 140 || l.Height != 30 {
		t.Fatalf("size = %dx%d, want 140x30", l.Width, l.Height)
	}
}
