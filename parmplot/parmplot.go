/*
 * parmplot.go, part of goparm.
 *
 *
 * Copyright 2025 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goParm is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

//Package parmplot draws quick diagnostic plots from a parsed topology:
//a partial-charge histogram and a per-class interaction count chart.
//These are sanity checks on a parameterization, not publication
//figures.
package parmplot

import (
	parm "github.com/rmera/goparm"
	"github.com/rmera/goparm/tables"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//chargeUnit converts the file's internal charge unit back to electron
//charges.
const chargeUnit = 18.2223

//ChargeHistogram writes a histogram of the partial charges of atoms,
//in electron units, to filename (format from its extension).
func ChargeHistogram(atoms []parm.Atom, bins int, filename string) error {
	if bins <= 0 {
		bins = 20
	}
	values := make(plotter.Values, len(atoms))
	for i, a := range atoms {
		values[i] = a.Charge / chargeUnit
	}
	p := plot.New()
	p.Title.Text = "Partial charge distribution"
	p.X.Label.Text = "Charge (e)"
	p.Y.Label.Text = "Atoms"
	h, err := plotter.NewHist(values, bins)
	if err != nil {
		return err
	}
	p.Add(h)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename)
}

//InteractionCounts writes a bar chart with the total number of bond,
//angle and torsion term instances of each class to filename. The
//counts come from the deduplicated tables, so they add back the
//collapsed multiplicities.
func InteractionCounts(s *tables.Set, filename string) error {
	var bonds, angles, propers, impropers int
	for _, row := range s.Bonds {
		bonds += row.Count
	}
	for _, row := range s.Angles {
		angles += row.Count
	}
	for _, row := range s.Dihedrals {
		if row.Improper {
			impropers++
		} else {
			propers++
		}
	}
	values := plotter.Values{float64(bonds), float64(angles),
		float64(propers), float64(impropers)}
	p := plot.New()
	p.Title.Text = "Interaction terms"
	p.Y.Label.Text = "Terms"
	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX("bonds", "angles", "propers", "impropers")
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename)
}
