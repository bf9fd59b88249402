/*
Copyright © 2026 the euler3d authors.
This file is part of euler3d.

euler3d is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

euler3d is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with euler3d.  If not, see <http://www.gnu.org/licenses/>.
*/

package reconstruct

import (
	"math"
	"testing"
)

func different(a, b, tol float64) bool {
	return math.Abs(a-b) > tol
}

// Sample stencils exercising smooth, discontinuous and constant data.
var samples = map[string][]float64{
	"smooth":        {1.0, 1.1, 1.3, 1.2, 0.9, 0.8, 0.85},
	"discontinuous": {1.0, 1.0, 1.0, 0.125, 0.125, 0.125, 0.125},
	"constant":      {2.5, 2.5, 2.5, 2.5, 2.5, 2.5, 2.5},
	"spike":         {1.0, 1.0, 1.0, 50.0, 1.0, 1.0, 1.0},
}

func TestWeightsSumToOne(t *testing.T) {
	const tol = 1.0e-14
	for name, data := range samples {
		for _, scheme := range []Scheme{WENO, TENO, UWC} {
			for _, order := range []int{3, 5, 7} {
				phi := data[:order]
				for _, w := range [][]float64{
					WeightsLeft(scheme, phi),
					WeightsRight(scheme, phi),
				} {
					sum := 0.0
					for _, wk := range w {
						sum += wk
					}
					if different(sum, 1.0, tol) {
						t.Errorf("%s %v order %d: weight sum = %g",
							name, scheme, order, sum)
					}
				}
			}
		}
	}
}

func TestUWCWeightsAreOptimal(t *testing.T) {
	for _, order := range []int{3, 5, 7} {
		phi := samples["discontinuous"][:order]
		w := WeightsLeft(UWC, phi)
		g := optimalLeft(order)
		for k := range w {
			if w[k] != g[k] {
				t.Errorf("order %d weight %d: got %g, want %g", order, k, w[k], g[k])
			}
		}
	}
}

// cellAverage integrates x^p over [x−h/2, x+h/2] divided by h.
func cellAverage(p int, x, h float64) float64 {
	a := x - h/2
	b := x + h/2
	return (math.Pow(b, float64(p+1)) - math.Pow(a, float64(p+1))) /
		(float64(p+1) * h)
}

// The optimal (UWC) reconstruction must be exact for polynomials up to
// degree order−1.
func TestUWCPolynomialExactness(t *testing.T) {
	const h = 0.1
	for _, order := range []int{3, 5, 7} {
		for p := 0; p < order; p++ {
			phi := make([]float64, order)
			for i := range phi {
				x := float64(i-(order-1)/2) * h
				phi[i] = cellAverage(p, x, h)
			}
			wantL := math.Pow(h/2, float64(p))  // value at the right face
			wantR := math.Pow(-h/2, float64(p)) // value at the left face
			if got := Left(UWC, phi); different(got, wantL, 1.0e-12) {
				t.Errorf("order %d degree %d Left: got %g, want %g", order, p, got, wantL)
			}
			if got := Right(UWC, phi); different(got, wantR, 1.0e-12) {
				t.Errorf("order %d degree %d Right: got %g, want %g", order, p, got, wantR)
			}
		}
	}
}

// On linear data every scheme must reproduce the exact interface values:
// the smoothness indicators coincide, so the nonlinear weights collapse to
// the optimal ones.
func TestLinearDataExactness(t *testing.T) {
	const tol = 1.0e-10
	for _, scheme := range []Scheme{WENO, TENO, UWC} {
		for _, order := range []int{3, 5, 7} {
			phi := make([]float64, order)
			for i := range phi {
				phi[i] = 3.0 + 2.0*float64(i-(order-1)/2)
			}
			if got := Left(scheme, phi); different(got, 4.0, tol) {
				t.Errorf("%v order %d Left on linear data: got %g, want 4", scheme, order, got)
			}
			if got := Right(scheme, phi); different(got, 2.0, tol) {
				t.Errorf("%v order %d Right on linear data: got %g, want 2", scheme, order, got)
			}
		}
	}
}

// Reversing a stencil swaps the two reconstructions.
func TestMirrorSymmetry(t *testing.T) {
	const tol = 1.0e-13
	for name, data := range samples {
		for _, scheme := range []Scheme{WENO, TENO, UWC} {
			for _, order := range []int{3, 5, 7} {
				phi := data[:order]
				rev := make([]float64, order)
				for i := range rev {
					rev[i] = phi[order-1-i]
				}
				if different(Left(scheme, phi), Right(scheme, rev), tol) {
					t.Errorf("%s %v order %d: Left(phi) != Right(reverse(phi))",
						name, scheme, order)
				}
			}
		}
	}
}

// TENO must drop the sub-stencils that cross a discontinuity: the
// reconstruction from the smooth side must not bleed across the jump.
func TestTENOCutsDiscontinuousStencils(t *testing.T) {
	phi := []float64{1.0, 1.0, 1.0, 0.125, 0.125}
	w := WeightsLeft(TENO, phi)
	// Sub-stencils 1 and 2 contain the jump between cells 2 and 3.
	if w[1] != 0 || w[2] != 0 {
		t.Errorf("TENO kept non-smooth sub-stencils: weights %v", w)
	}
	if w[0] == 0 {
		t.Errorf("TENO dropped the smooth sub-stencil: weights %v", w)
	}
}

func TestOrderOneIsIdentity(t *testing.T) {
	phi := []float64{7.25}
	if Left(WENO, phi) != 7.25 || Right(TENO, phi) != 7.25 {
		t.Error("stencil of one cell must return the cell average")
	}
}
