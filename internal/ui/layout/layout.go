package layout

// PanelLayout holds calculated dimensions for the three-panel layout.
type PanelLayout struct {
	Width  int
	Height int

	HistoryWidth int
	InputWidth   int
	OutputWidth  int

	ContentHeight int // height minus tab bar and status bar

	HistoryVisible bool
	TwoPanelMode   bool
	SinglePanel    bool
}

const (
	tabBarHeight    = 1
	statusBarHeight = 1
	minHistoryWidth = 24
	maxHistoryWidth = 40
)

// Calculate computes the panel layout from terminal dimensions.
func Calculate(width, height int, historyVisible bool) PanelLayout {
	l := PanelLayout{
		Width:          width,
		Height:         height,
		HistoryVisible: historyVisible,
		ContentHeight:  height - tabBarHeight - statusBarHeight,
	}

	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}

	switch {
	case width < 60:
		l.SinglePanel = true
		l.HistoryVisible = false
		l.InputWidth = width
		l.OutputWidth = width
	case width < 100:
		l.TwoPanelMode = true
		l.HistoryVisible = false
		half := width / 2
		l.InputWidth = half
		l.OutputWidth = width - half
	default:
		if historyVisible {
			l.HistoryWidth = clamp(width/4, minHistoryWidth, maxHistoryWidth)
			remaining := width - l.HistoryWidth
			l.InputWidth = remaining / 2
			l.OutputWidth = remaining - l.InputWidth
		} else {
			half := width / 2
			l.InputWidth = half
			l.OutputWidth = width - half
		}
	}

	return l
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
