/*
 * values.go, part of goparm.
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

//Typed decoding of whole sections. Decoded slices are cached per
//section so the connectivity arrays, which several consumers walk
//repeatedly, are only parsed once per File.

//SectionInts decodes every token of the named section as integers.
//The result is cached. A missing section decodes as nil with no error;
//a token that fails to parse is a *ParseError naming the section and
//the token's line.
func (F *File) SectionInts(name string) ([]int, error) {
	sec := F.sections[name]
	if sec == nil {
		return nil, nil
	}
	F.mu.Lock()
	cached, ok := F.intCache[name]
	F.mu.Unlock()
	if ok {
		return cached, nil
	}
	values := make([]int, len(sec.Tokens))
	for i, tok := range sec.Tokens {
		v, err := tok.Int()
		if err != nil {
			return nil, NewParseError(name, tok.Line, "unparsable integer token %q", tok.Trim())
		}
		values[i] = v
	}
	F.mu.Lock()
	F.intCache[name] = values
	F.mu.Unlock()
	return values, nil
}

//SectionFloats decodes every token of the named section as floats,
//accepting the legacy D-exponent. The result is cached; a missing
//section decodes as nil with no error.
func (F *File) SectionFloats(name string) ([]float64, error) {
	sec := F.sections[name]
	if sec == nil {
		return nil, nil
	}
	F.mu.Lock()
	cached, ok := F.floatCache[name]
	F.mu.Unlock()
	if ok {
		return cached, nil
	}
	values := make([]float64, len(sec.Tokens))
	for i, tok := range sec.Tokens {
		v, err := tok.Float()
		if err != nil {
			return nil, NewParseError(name, tok.Line, "unparsable float token %q", tok.Trim())
		}
		values[i] = v
	}
	F.mu.Lock()
	F.floatCache[name] = values
	F.mu.Unlock()
	return values, nil
}

//checkLength enforces the POINTERS-derived token count of a required
//section. An expected count of zero means the section must be absent
//or empty; anything else is a length mismatch.
func (F *File) checkLength(name string, expected int) (*Section, error) {
	sec := F.sections[name]
	if expected == 0 {
		if sec != nil && len(sec.Tokens) != 0 {
			return nil, NewParseError(name, sec.FlagLine, "length %d does not match expected 0", len(sec.Tokens))
		}
		return nil, nil
	}
	if sec == nil || len(sec.Tokens) == 0 {
		return nil, NewParseError(name, -1, "required section missing")
	}
	if len(sec.Tokens) != expected {
		return nil, NewParseError(name, sec.FlagLine, "length %d does not match expected %d", len(sec.Tokens), expected)
	}
	return sec, nil
}

//Ints decodes a required integer section, checking its token count
//against expected.
func (F *File) Ints(name string, expected int) ([]int, error) {
	sec, err := F.checkLength(name, expected)
	if err != nil {
		return nil, errDecorate(err, "Ints")
	}
	if sec == nil {
		return nil, nil
	}
	values, err := F.SectionInts(name)
	if err != nil {
		return nil, errDecorate(err, "Ints")
	}
	return values, nil
}

//Floats decodes a required float section, checking its token count
//against expected.
func (F *File) Floats(name string, expected int) ([]float64, error) {
	sec, err := F.checkLength(name, expected)
	if err != nil {
		return nil, errDecorate(err, "Floats")
	}
	if sec == nil {
		return nil, nil
	}
	values, err := F.SectionFloats(name)
	if err != nil {
		return nil, errDecorate(err, "Floats")
	}
	return values, nil
}

//OptionalFloats decodes a float section that real topologies may omit
//entirely (e.g. SCEE_SCALE_FACTOR). An absent section yields nil with
//no error, so the values read as undefined. A section that is present
//but truncated is still fatal.
func (F *File) OptionalFloats(name string, expected int) ([]float64, error) {
	sec := F.sections[name]
	if sec == nil {
		return nil, nil
	}
	if expected == 0 {
		if len(sec.Tokens) != 0 {
			return nil, NewParseError(name, sec.FlagLine, "length %d does not match expected 0", len(sec.Tokens))
		}
		return nil, nil
	}
	if len(sec.Tokens) == 0 {
		return nil, NewParseError(name, sec.FlagLine, "section present but empty")
	}
	values, err := F.Floats(name, expected)
	if err != nil {
		return nil, errDecorate(err, "OptionalFloats")
	}
	return values, nil
}

//Strings decodes a required string section (atom names, type labels),
//trimming each fixed-width token.
func (F *File) Strings(name string, expected int) ([]string, error) {
	sec, err := F.checkLength(name, expected)
	if err != nil {
		return nil, errDecorate(err, "Strings")
	}
	if sec == nil {
		return nil, nil
	}
	values := make([]string, len(sec.Tokens))
	for i, tok := range sec.Tokens {
		values[i] = tok.Trim()
	}
	return values, nil
}

//SerialFromPointer converts a raw atom-index pointer as stored in the
//bond, angle and dihedral arrays into a 1-based atom serial. The format
//stores atom indices as three times the zero-based coordinate offset,
//negated when the record carries a flag, so the conversion is
//abs(raw)/3+1 for every pointer; there is no alternate rounding.
func SerialFromPointer(raw int) int {
	if raw < 0 {
		raw = -raw
	}
	return raw/3 + 1
}
