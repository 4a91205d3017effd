/*
 * parmdoc.go, part of goparm.
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

//Package parm reads AMBER parm7/prmtop topology files into tokenized,
//span-preserving sections, decodes the POINTERS table, and derives
//Lennard-Jones parameters per atom type and type pair. Every token keeps
//its exact (line, start, end) character span in the original text, so
//consumers can map any decoded quantity back to the characters that
//encode it. The package does not evaluate energies and does not modify
//files: it is a read-only indexing layer over one loaded topology.
//
//Higher-level indexing (aggregated interaction tables, selection
//cycling, highlight span computation) lives in the tables, bondgraph
//and highlight subpackages.
package parm
