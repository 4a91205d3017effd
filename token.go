/*
 * token.go, part of goparm.
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

package parm

import (
	"strconv"
	"strings"
)

//Kind is the value kind a %FORMAT directive declares for a section.
type Kind int

const (
	String Kind = iota
	Integer
	Float
)

func (K Kind) String() string {
	switch K {
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return "string"
	}
}

//Format describes the fixed-width line layout of one section, as
//declared by its %FORMAT directive, e.g. %FORMAT(5E16.8) is 5 fields
//per line, kind Float, width 16, precision 8.
type Format struct {
	PerLine   int
	Kind      Kind
	Width     int
	Precision int //0 when the directive carries no precision.
}

//Token is one fixed-width field of a section data line. Raw is the
//exact substring of the line, spaces included. Start and End are
//0-based character offsets into that line, with End clamped to its
//length, so Raw == line[Start:End] always holds on the original text.
type Token struct {
	Raw   string
	Line  int //0-based line index in the file.
	Start int
	End   int
}

//Trim returns the token text without surrounding spaces.
func (T Token) Trim() string { return strings.TrimSpace(T.Raw) }

//Int parses the token as an integer. An all-blank token parses as 0,
//matching the format's convention for absent trailing fields. Values
//written in float form (e.g. "2.") are truncated toward zero.
func (T Token) Int() (int, error) {
	s := T.Trim()
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err == nil {
		return v, nil
	}
	f, ferr := strconv.ParseFloat(normalizeExponent(s), 64)
	if ferr != nil {
		return 0, err
	}
	return int(f), nil
}

//Float parses the token as a float, normalizing the legacy FORTRAN
//D/d exponent marker to E/e first. An all-blank token parses as 0.
func (T Token) Float() (float64, error) {
	s := T.Trim()
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(normalizeExponent(s), 64)
}

//normalizeExponent rewrites FORTRAN double-precision exponents
//(1.5D-02) into the form strconv understands (1.5E-02).
func normalizeExponent(s string) string {
	s = strings.ReplaceAll(s, "D", "E")
	return strings.ReplaceAll(s, "d", "e")
}

//Section is one %FLAG block of the topology: its name, declared line
//format, the span of lines it covers and every non-blank fixed-width
//token it contains, in file order.
type Section struct {
	Name     string
	Format   Format
	FlagLine int //0-based line of the %FLAG marker.
	EndLine  int //0-based last line of the section.
	Tokens   []Token
}

//Len returns the number of tokens in the section.
func (S *Section) Len() int {
	if S == nil {
		return 0
	}
	return len(S.Tokens)
}

//Token returns the i-th token of the section and true, or a zero Token
//and false if i is out of range.
func (S *Section) Token(i int) (Token, bool) {
	if S == nil || i < 0 || i >= len(S.Tokens) {
		return Token{}, false
	}
	return S.Tokens[i], true
}
