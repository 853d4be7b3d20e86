// Package smooth selects and applies adaptive Savitzky-Golay smoothing
// to the derived angle series. The window length is chosen from the
// series length alone, so the same session always smooths identically.
package smooth

// Params holds the tunable smoothing constants. Zero fields fall back
// to the defaults via the getters, mirroring how processing config is
// loaded elsewhere.
type Params struct {
	// PolyOrder is the degree of the local regression polynomial.
	PolyOrder int
	// MinWindow is the smallest window the filter will run with.
	MinWindow int
	// MinSamples is the series length at or below which smoothing is
	// skipped entirely.
	MinSamples int
}

// Default smoothing constants.
const (
	DefaultPolyOrder  = 2
	DefaultMinWindow  = 5
	DefaultMinSamples = 10
)

// DefaultParams returns the standard smoothing configuration.
func DefaultParams() Params {
	return Params{
		PolyOrder:  DefaultPolyOrder,
		MinWindow:  DefaultMinWindow,
		MinSamples: DefaultMinSamples,
	}
}

func (p Params) polyOrder() int {
	if p.PolyOrder <= 0 {
		return DefaultPolyOrder
	}
	return p.PolyOrder
}

func (p Params) minWindow() int {
	if p.MinWindow <= 0 {
		return DefaultMinWindow
	}
	return p.MinWindow
}

func (p Params) minSamples() int {
	if p.MinSamples <= 0 {
		return DefaultMinSamples
	}
	return p.MinSamples
}

// Plan is the smoothing decision for one series. It is computed once
// per session and applied to all target columns, or to none.
type Plan struct {
	WindowLength int
	PolyOrder    int
	Enabled      bool
}

// NewPlan derives the smoothing plan for a series of n samples:
//
//   - n at or below MinSamples disables smoothing.
//   - Otherwise the candidate window is n/4, bumped to the next odd
//     number when even (the filter needs an odd window), then raised to
//     MinWindow.
//
// The plan does not cross-check the window against n; short series just
// above the threshold can select a window longer than the data, and
// Smooth rejects that case loudly rather than clamping.
func NewPlan(n int, p Params) Plan {
	plan := Plan{PolyOrder: p.polyOrder()}

	if n <= p.minSamples() {
		return plan
	}

	window := n / 4
	if window%2 == 0 {
		window++
	}
	if window < p.minWindow() {
		window = p.minWindow()
	}

	plan.WindowLength = window
	plan.Enabled = window >= p.minWindow()
	return plan
}
