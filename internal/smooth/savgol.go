package smooth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// WindowSizeError reports a smoothing window that cannot be satisfied
// by the series it was planned for. This is reachable for series just
// above the minimum-sample threshold, where the minimum window can
// exceed the series length; the filter refuses to clamp silently.
type WindowSizeError struct {
	WindowLength int
	SeriesLength int
}

func (e *WindowSizeError) Error() string {
	return fmt.Sprintf("smooth: window length %d exceeds series length %d", e.WindowLength, e.SeriesLength)
}

// Filter applies a Savitzky-Golay filter to y: each output sample is the
// value of a degree-polyorder polynomial fitted by least squares to the
// window of samples centred on it. The interior is a fixed convolution;
// the first and last half-window samples are taken from polynomial fits
// to the leading and trailing full windows, so a constant input is
// reproduced exactly over the whole series.
//
// NaN inputs propagate to every output whose window contains them.
func Filter(y []float64, window, polyorder int) ([]float64, error) {
	n := len(y)
	if window%2 == 0 || window < 1 {
		return nil, fmt.Errorf("smooth: window length %d must be a positive odd number", window)
	}
	if window > n {
		return nil, &WindowSizeError{WindowLength: window, SeriesLength: n}
	}
	if polyorder >= window {
		return nil, fmt.Errorf("smooth: polynomial order %d requires a window larger than %d", polyorder, polyorder)
	}

	kernel, err := centralKernel(window, polyorder)
	if err != nil {
		return nil, err
	}

	half := window / 2
	out := make([]float64, n)

	// Interior samples: convolution with the precomputed kernel.
	for i := half; i < n-half; i++ {
		var acc float64
		for j, c := range kernel {
			acc += c * y[i-half+j]
		}
		out[i] = acc
	}

	// Edge samples: fit one polynomial to each end window and evaluate
	// it at the uncovered positions (scipy's "interp" edge mode).
	head, err := fitPolynomial(y[:window], polyorder)
	if err != nil {
		return nil, err
	}
	for i := 0; i < half; i++ {
		out[i] = evalPolynomial(head, float64(i))
	}

	tail, err := fitPolynomial(y[n-window:], polyorder)
	if err != nil {
		return nil, err
	}
	for i := n - half; i < n; i++ {
		out[i] = evalPolynomial(tail, float64(i-(n-window)))
	}

	return out, nil
}

// centralKernel returns the convolution coefficients that evaluate the
// least-squares polynomial fit at the centre of a window. With A the
// Vandermonde matrix over offsets -h..h, the fitted centre value is
// e0'(A'A)^-1 A'y, so the kernel is A (A'A)^-1 e0.
func centralKernel(window, polyorder int) ([]float64, error) {
	half := window / 2
	offsets := make([]float64, window)
	for i := range offsets {
		offsets[i] = float64(i - half)
	}
	a := vandermonde(offsets, polyorder)

	var ata mat.Dense
	ata.Mul(a.T(), a)

	e0 := mat.NewVecDense(polyorder+1, nil)
	e0.SetVec(0, 1)

	var z mat.VecDense
	if err := z.SolveVec(&ata, e0); err != nil {
		return nil, fmt.Errorf("smooth: singular design matrix for window %d order %d: %w", window, polyorder, err)
	}

	var c mat.VecDense
	c.MulVec(a, &z)

	kernel := make([]float64, window)
	for i := range kernel {
		kernel[i] = c.AtVec(i)
	}
	return kernel, nil
}

// fitPolynomial fits a degree-polyorder polynomial to y sampled at
// x = 0, 1, ..., len(y)-1 and returns its coefficients, lowest order
// first.
func fitPolynomial(y []float64, polyorder int) ([]float64, error) {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	a := vandermonde(x, polyorder)
	b := mat.NewVecDense(len(y), y)

	var qr mat.QR
	qr.Factorize(a)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, b); err != nil {
		return nil, fmt.Errorf("smooth: edge window fit failed: %w", err)
	}

	coeffs := make([]float64, polyorder+1)
	for i := range coeffs {
		coeffs[i] = beta.AtVec(i)
	}
	return coeffs, nil
}

func evalPolynomial(coeffs []float64, x float64) float64 {
	v := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + coeffs[i]
	}
	return v
}

// vandermonde builds the len(x) by (degree+1) design matrix with rows
// [1, x, x^2, ..., x^degree].
func vandermonde(x []float64, degree int) *mat.Dense {
	a := mat.NewDense(len(x), degree+1, nil)
	for i, v := range x {
		p := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, p)
			p *= v
		}
	}
	return a
}
