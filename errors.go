/*
 * errors.go, part of goparm.
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

import "fmt"

// Error is the interface implemented by all errors returned from this
// library. The Decorate method allows adding information as the error is
// passed up the call stack. Each call returns the resulting decoration
// slice. If passed an empty string, it just returns the current value
// without adding anything.
type Error interface {
	Error() string
	Decorate(string) []string
}

//ParseError signals a fatal problem with the topology file itself: a
//malformed format directive, a section whose token count does not match
//the POINTERS-derived expectation, or a required numeric token that
//cannot be parsed. A load that produces a ParseError must be discarded
//wholesale; any previously loaded generation stays valid.
type ParseError struct {
	message string
	section string //the %FLAG name of the offending section, or "" if none applies.
	line    int    //0-based line in the file, or -1 if not known.
	deco    []string
}

//NewParseError builds a ParseError for the given section and 0-based
//line. Pass line -1 when no single line is responsible.
func NewParseError(section string, line int, format string, args ...interface{}) *ParseError {
	return &ParseError{message: fmt.Sprintf(format, args...), section: section, line: line}
}

func (err *ParseError) Error() string {
	if err.section == "" {
		return fmt.Sprintf("goparm: %s", err.message)
	}
	if err.line < 0 {
		return fmt.Sprintf("goparm: section %s: %s", err.section, err.message)
	}
	return fmt.Sprintf("goparm: section %s, line %d: %s", err.section, err.line+1, err.message)
}

func (err *ParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Section returns the %FLAG name of the section the error refers to.
func (err *ParseError) Section() string { return err.section }

//Line returns the 0-based line the error refers to, or -1.
func (err *ParseError) Line() int { return err.line }

//errDecorate asserts that err implements parm.Error and decorates it
//with the caller's name before returning it. Calling it with a
//non-parm.Error error is a programming mistake and panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
