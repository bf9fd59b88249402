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

// Package reconstruct implements one-dimensional polynomial interface
// reconstruction of cell-averaged data for finite-volume schemes.
//
// Given a stencil of cell averages φ[0..s−1] centered on a cell, Left
// extrapolates the value at the cell's right face (the left state of that
// face's Riemann problem) and Right extrapolates the value at the cell's left
// face (the right state of that face's Riemann problem). Stencil lengths 1,
// 3, 5 and 7 are supported; length 1 returns the cell average unchanged.
package reconstruct

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Scheme selects how the sub-stencil polynomials are blended.
type Scheme int

const (
	// WENO blends sub-stencils with the Jiang–Shu nonlinear weights.
	WENO Scheme = iota
	// TENO applies a hard cutoff that excludes non-smooth sub-stencils
	// entirely and renormalizes the optimal weights over the survivors.
	TENO
	// UWC uses the optimal linear weights unchanged (upwind-central).
	UWC
)

func (s Scheme) String() string {
	switch s {
	case WENO:
		return "WENO"
	case TENO:
		return "TENO"
	case UWC:
		return "UWC"
	}
	return "unknown"
}

// Reconstruction constants.
const (
	Epsilon  = 1.0e-6  // WENO smoothness regularization
	Epsilon2 = 1.0e-40 // TENO smoothness regularization
	CT       = 1.0e-6  // TENO cutoff threshold
	Q        = 6.0     // TENO sharpness exponent
)

// Optimal linear weights for the right-face ("left state") reconstruction.
// The left-face weights are the reverse.
var (
	gamma3 = []float64{1.0 / 3.0, 2.0 / 3.0}
	gamma5 = []float64{1.0 / 10.0, 3.0 / 5.0, 3.0 / 10.0}
	gamma7 = []float64{1.0 / 35.0, 12.0 / 35.0, 18.0 / 35.0, 4.0 / 35.0}
)

// Left returns the reconstructed value at the right face of the cell owning
// the stencil. len(phi) must be 1, 3, 5 or 7.
func Left(s Scheme, phi []float64) float64 {
	switch len(phi) {
	case 1:
		return phi[0]
	case 3:
		w := weights(s, beta3(phi), gamma3)
		return w[0]*(-0.5*phi[0]+1.5*phi[1]) +
			w[1]*(0.5*phi[1]+0.5*phi[2])
	case 5:
		w := weights(s, beta5(phi), gamma5)
		return w[0]*(1.0/3.0*phi[0]-7.0/6.0*phi[1]+11.0/6.0*phi[2]) +
			w[1]*(-1.0/6.0*phi[1]+5.0/6.0*phi[2]+1.0/3.0*phi[3]) +
			w[2]*(1.0/3.0*phi[2]+5.0/6.0*phi[3]-1.0/6.0*phi[4])
	case 7:
		w := weights(s, beta7(phi), gamma7)
		return w[0]*(-1.0/4.0*phi[0]+13.0/12.0*phi[1]-23.0/12.0*phi[2]+25.0/12.0*phi[3]) +
			w[1]*(1.0/12.0*phi[1]-5.0/12.0*phi[2]+13.0/12.0*phi[3]+1.0/4.0*phi[4]) +
			w[2]*(-1.0/12.0*phi[2]+7.0/12.0*phi[3]+7.0/12.0*phi[4]-1.0/12.0*phi[5]) +
			w[3]*(1.0/4.0*phi[3]+13.0/12.0*phi[4]-5.0/12.0*phi[5]+1.0/12.0*phi[6])
	}
	panic("reconstruct: unsupported stencil length")
}

// Right returns the reconstructed value at the left face of the cell owning
// the stencil. len(phi) must be 1, 3, 5 or 7.
func Right(s Scheme, phi []float64) float64 {
	switch len(phi) {
	case 1:
		return phi[0]
	case 3:
		w := weights(s, beta3(phi), reversed(gamma3))
		return w[0]*(0.5*phi[1]+0.5*phi[0]) +
			w[1]*(-0.5*phi[2]+1.5*phi[1])
	case 5:
		w := weights(s, beta5(phi), reversed(gamma5))
		return w[0]*(1.0/3.0*phi[2]+5.0/6.0*phi[1]-1.0/6.0*phi[0]) +
			w[1]*(-1.0/6.0*phi[3]+5.0/6.0*phi[2]+1.0/3.0*phi[1]) +
			w[2]*(1.0/3.0*phi[4]-7.0/6.0*phi[3]+11.0/6.0*phi[2])
	case 7:
		w := weights(s, beta7(phi), reversed(gamma7))
		return w[0]*(1.0/4.0*phi[3]+13.0/12.0*phi[2]-5.0/12.0*phi[1]+1.0/12.0*phi[0]) +
			w[1]*(-1.0/12.0*phi[4]+7.0/12.0*phi[3]+7.0/12.0*phi[2]-1.0/12.0*phi[1]) +
			w[2]*(1.0/12.0*phi[5]-5.0/12.0*phi[4]+13.0/12.0*phi[3]+1.0/4.0*phi[2]) +
			w[3]*(-1.0/4.0*phi[6]+13.0/12.0*phi[5]-23.0/12.0*phi[4]+25.0/12.0*phi[3])
	}
	panic("reconstruct: unsupported stencil length")
}

// WeightsLeft returns the blending weights used by Left for the given
// stencil. It is exposed for property testing; len(phi) must be 3, 5 or 7.
func WeightsLeft(s Scheme, phi []float64) []float64 {
	return weights(s, betas(phi), optimalLeft(len(phi)))
}

// WeightsRight returns the blending weights used by Right for the given
// stencil. It is exposed for property testing; len(phi) must be 3, 5 or 7.
func WeightsRight(s Scheme, phi []float64) []float64 {
	return weights(s, betas(phi), reversed(optimalLeft(len(phi))))
}

// optimalLeft returns the optimal linear weights of the left (right-face)
// reconstruction for the given stencil length.
func optimalLeft(n int) []float64 {
	switch n {
	case 3:
		return gamma3
	case 5:
		return gamma5
	case 7:
		return gamma7
	}
	panic("reconstruct: unsupported stencil length")
}

func betas(phi []float64) []float64 {
	switch len(phi) {
	case 3:
		return beta3(phi)
	case 5:
		return beta5(phi)
	case 7:
		return beta7(phi)
	}
	panic("reconstruct: unsupported stencil length")
}

// beta3 returns the smoothness indicators of the two linear sub-stencils.
func beta3(phi []float64) []float64 {
	return []float64{
		(phi[1] - phi[0]) * (phi[1] - phi[0]),
		(phi[2] - phi[1]) * (phi[2] - phi[1]),
	}
}

// beta5 returns the Jiang–Shu smoothness indicators of the three parabolic
// sub-stencils.
func beta5(phi []float64) []float64 {
	b := make([]float64, 3)
	b[0] = 13.0/12.0*(phi[0]-2*phi[1]+phi[2])*(phi[0]-2*phi[1]+phi[2]) +
		0.25*(phi[0]-4*phi[1]+3*phi[2])*(phi[0]-4*phi[1]+3*phi[2])
	b[1] = 13.0/12.0*(phi[1]-2*phi[2]+phi[3])*(phi[1]-2*phi[2]+phi[3]) +
		0.25*(phi[1]-phi[3])*(phi[1]-phi[3])
	b[2] = 13.0/12.0*(phi[2]-2*phi[3]+phi[4])*(phi[2]-2*phi[3]+phi[4]) +
		0.25*(3*phi[2]-4*phi[3]+phi[4])*(3*phi[2]-4*phi[3]+phi[4])
	return b
}

// beta7 returns the smoothness indicators of the four cubic sub-stencils
// (Balsara & Shu coefficients).
func beta7(phi []float64) []float64 {
	b := make([]float64, 4)
	b[0] = phi[0]*(547.0*phi[0]-3882.0*phi[1]+4642.0*phi[2]-1854.0*phi[3]) +
		phi[1]*(7043.0*phi[1]-17246.0*phi[2]+7042.0*phi[3]) +
		phi[2]*(11003.0*phi[2]-9402.0*phi[3]) + phi[3]*2107.0*phi[3]
	b[1] = phi[1]*(267.0*phi[1]-1642.0*phi[2]+1602.0*phi[3]-494.0*phi[4]) +
		phi[2]*(2843.0*phi[2]-5966.0*phi[3]+1922.0*phi[4]) +
		phi[3]*(3443.0*phi[3]-2522.0*phi[4]) + phi[4]*547.0*phi[4]
	b[2] = phi[2]*(547.0*phi[2]-2522.0*phi[3]+1922.0*phi[4]-494.0*phi[5]) +
		phi[3]*(3443.0*phi[3]-5966.0*phi[4]+1602*phi[5]) +
		phi[4]*(2843.0*phi[4]-1642*phi[5]) + phi[5]*267.0*phi[5]
	b[3] = phi[3]*(2107.0*phi[3]-9402.0*phi[4]+7042.0*phi[5]-1854.0*phi[6]) +
		phi[4]*(11003.0*phi[4]-17246.0*phi[5]+4642.0*phi[6]) +
		phi[5]*(7043.0*phi[5]-3882.0*phi[6]) + phi[6]*547.0*phi[6]
	return b
}

// weights converts smoothness indicators and optimal weights into the
// blending weights of the selected scheme. The result sums to one.
func weights(s Scheme, beta, gamma []float64) []float64 {
	w := make([]float64, len(gamma))
	switch s {
	case WENO:
		for k, g := range gamma {
			w[k] = g / ((beta[k] + Epsilon) * (beta[k] + Epsilon))
		}
	case TENO:
		chi := make([]float64, len(gamma))
		for k := range chi {
			chi[k] = 1.0 / math.Pow(beta[k]+Epsilon2, Q)
		}
		sum := floats.Sum(chi)
		for k, g := range gamma {
			if chi[k]/sum < CT {
				w[k] = 0.0
			} else {
				w[k] = g
			}
		}
	case UWC:
		copy(w, gamma)
		return w
	}
	floats.Scale(1.0/floats.Sum(w), w)
	return w
}

func reversed(g []float64) []float64 {
	r := make([]float64, len(g))
	for k := range g {
		r[k] = g[len(g)-1-k]
	}
	return r
}
