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

package euler3d

// transportFlux assigns the passive-scalar component of a wall flux by
// first-order upwinding consistent with the mass flux: the scalar rides the
// density flux of whichever side the mass flow comes from. Both wall fluxes
// share the component, so the scalar stays conservative also across HLLS
// walls.
func (d *Domain) transportFlux(wl *Wall) {
	if wl.FR[0] < tol14 {
		wl.FR[5] = wl.FR[0] * wl.UR[5] / wl.UR[0]
	} else {
		wl.FR[5] = wl.FL[0] * wl.UL[5] / wl.UL[0]
	}
	wl.FL[5] = wl.FR[5]
}
