/*
 * lexer.go, part of goparm.
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
	"compress/gzip"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

//File is one parsed topology file: the original text, split into lines,
//plus the tokenized sections in file order. A File is immutable once
//built except for the internal decode caches, which are guarded so that
//concurrent readers are safe.
type File struct {
	text     string
	lines    []string
	sections map[string]*Section
	order    []string

	mu         sync.Mutex
	intCache   map[string][]int
	floatCache map[string][]float64
}

var formatRe = regexp.MustCompile(`%FORMAT\((\d+)([a-zA-Z])(\d+)(?:\.(\d+))?\)`)

//ParseString lexes a full topology text into sections. It is a pure,
//single-pass operation: no interpretation of section contents happens
//here beyond fixed-width slicing. Sections start at a "%FLAG NAME"
//marker line, take their layout from the following %FORMAT directive
//and run until the next marker or end of file. The last data line of a
//section may hold fewer fields than the directive declares. Any data
//line encountered without a valid directive in force is a *ParseError.
func ParseString(text string) (*File, error) {
	lines := strings.Split(text, "\n")
	//CRLF files keep their offsets; the carriage return is never part
	//of a token.
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	f := &File{
		text:       text,
		lines:      lines,
		sections:   make(map[string]*Section),
		intCache:   make(map[string][]int),
		floatCache: make(map[string][]float64),
	}
	var cur *Section
	haveFormat := false
	finalize := func(end int) {
		if cur == nil {
			return
		}
		cur.EndLine = end
		if _, seen := f.sections[cur.Name]; !seen {
			f.order = append(f.order, cur.Name)
		}
		f.sections[cur.Name] = cur
	}
	for idx, line := range f.lines {
		if strings.HasPrefix(line, "%FLAG") {
			finalize(idx - 1)
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, NewParseError("", idx, "%%FLAG marker without a section name")
			}
			cur = &Section{Name: fields[1], FlagLine: idx}
			haveFormat = false
			continue
		}
		if strings.HasPrefix(line, "%FORMAT") {
			if cur == nil {
				return nil, NewParseError("", idx, "%%FORMAT directive outside any section")
			}
			m := formatRe.FindStringSubmatch(line)
			if m == nil {
				return nil, NewParseError(cur.Name, idx, "unparsable format directive %q", strings.TrimSpace(line))
			}
			perLine, _ := strconv.Atoi(m[1])
			width, _ := strconv.Atoi(m[3])
			kind, ok := kindForLetter(m[2])
			if !ok {
				return nil, NewParseError(cur.Name, idx, "unknown format kind letter %q", m[2])
			}
			precision := 0
			if m[4] != "" {
				precision, _ = strconv.Atoi(m[4])
			}
			if perLine <= 0 || width <= 0 {
				return nil, NewParseError(cur.Name, idx, "format directive declares zero fields or zero width")
			}
			cur.Format = Format{PerLine: perLine, Kind: kind, Width: width, Precision: precision}
			haveFormat = true
			continue
		}
		if strings.HasPrefix(line, "%") {
			//%VERSION, %COMMENT and friends carry no tokens.
			continue
		}
		if cur == nil {
			//Preamble before the first %FLAG.
			continue
		}
		if !haveFormat {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return nil, NewParseError(cur.Name, idx, "data line without a %%FORMAT directive")
		}
		for slot := 0; slot < cur.Format.PerLine; slot++ {
			start := slot * cur.Format.Width
			if start >= len(line) {
				break
			}
			end := start + cur.Format.Width
			if end > len(line) {
				end = len(line)
			}
			raw := line[start:end]
			if strings.TrimSpace(raw) == "" {
				continue
			}
			cur.Tokens = append(cur.Tokens, Token{Raw: raw, Line: idx, Start: start, End: end})
		}
	}
	finalize(len(f.lines) - 1)
	return f, nil
}

func kindForLetter(letter string) (Kind, bool) {
	switch letter {
	case "a", "A":
		return String, true
	case "i", "I":
		return Integer, true
	case "e", "E", "f", "F", "d", "D", "g", "G":
		return Float, true
	}
	return String, false
}

//Read lexes a topology from r. The whole text is kept, since returned
//spans must index into it.
func Read(r io.Reader) (*File, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, NewParseError("", -1, "reading topology: %v", err)
	}
	f, err := ParseString(string(buf))
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return f, nil
}

//ReadFile opens and lexes a topology file. Files ending in ".gz" or
//".zst" are decompressed transparently, which bounds peak memory to the
//decompressed text itself for the common case of archived topologies.
func ReadFile(path string) (*File, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, NewParseError("", -1, "unable to open %s: %v", path, err)
	}
	defer fin.Close()
	var r io.Reader = fin
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(fin)
		if err != nil {
			return nil, NewParseError("", -1, "opening gzip stream %s: %v", path, err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(fin)
		if err != nil {
			return nil, NewParseError("", -1, "opening zstd stream %s: %v", path, err)
		}
		defer zr.Close()
		r = zr
	}
	f, err := Read(r)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return f, nil
}

//Text returns the exact original text of the file.
func (F *File) Text() string { return F.text }

//NLines returns the number of lines in the file.
func (F *File) NLines() int { return len(F.lines) }

//Line returns the i-th (0-based) line, without its newline.
func (F *File) Line(i int) string {
	if i < 0 || i >= len(F.lines) {
		return ""
	}
	return F.lines[i]
}

//Section returns the named section, or nil if the file has none.
func (F *File) Section(name string) *Section { return F.sections[name] }

//Sections returns all sections in file order.
func (F *File) Sections() []*Section {
	out := make([]*Section, 0, len(F.order))
	for _, name := range F.order {
		out = append(out, F.sections[name])
	}
	return out
}

//HasSection reports whether the named section exists, with or without
//tokens.
func (F *File) HasSection(name string) bool {
	_, ok := F.sections[name]
	return ok
}
