/*
 * parm_test.go, part of goparm.
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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestLexerSpans(Te *testing.T) {
	f, err := ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	sec := f.Section("ATOM_NAME")
	if sec == nil {
		Te.Fatal("ATOM_NAME section missing")
	}
	if sec.Len() != 5 {
		Te.Errorf("ATOM_NAME has %d tokens, want 5", sec.Len())
	}
	first, _ := sec.Token(0)
	if first.Raw != "C1  " || first.Start != 0 || first.End != 4 {
		Te.Errorf("first name token %q [%d:%d]", first.Raw, first.Start, first.End)
	}
	//The last token sits on a line shorter than 5 full fields, so its
	//span must be clamped to the line end.
	last, _ := sec.Token(4)
	if last.Trim() != "C5" || last.Start != 16 || last.End != 18 {
		Te.Errorf("clamped token %q [%d:%d]", last.Raw, last.Start, last.End)
	}
	line := f.Line(last.Line)
	if line[last.Start:last.End] != last.Raw {
		Te.Errorf("span does not slice back to the token: %q vs %q",
			line[last.Start:last.End], last.Raw)
	}
	if sec.Format.PerLine != 20 || sec.Format.Kind != String || sec.Format.Width != 4 {
		Te.Errorf("bad ATOM_NAME format %+v", sec.Format)
	}
}

func TestLexerDExponent(Te *testing.T) {
	f, err := ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	values, err := f.SectionFloats("LENNARD_JONES_ACOEF")
	if err != nil {
		Te.Fatal(err)
	}
	if values[0] != 9.71708117e+05 {
		Te.Errorf("D-exponent token decoded as %v", values[0])
	}
}

func TestLexerBadFormat(Te *testing.T) {
	if _, err := ParseString("%FLAG A\n%FORMAT(bogus)\n"); err == nil {
		Te.Error("unparsable format directive was accepted")
	}
	if _, err := ParseString("%FLAG A\n       1\n"); err == nil {
		Te.Error("data line without format directive was accepted")
	}
	if _, err := ParseString("%FLAG A\n%FORMAT(10Q8)\n"); err == nil {
		Te.Error("unknown format kind was accepted")
	}
}

//Topology files written on Windows carry CRLF line endings; the
//carriage return must never leak into a token.
func TestLexerCRLF(Te *testing.T) {
	plain, err := os.ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	crlf := strings.ReplaceAll(string(plain), "\n", "\r\n")
	f, err := ParseString(crlf)
	if err != nil {
		Te.Fatal(err)
	}
	sec := f.Section("LENNARD_JONES_ACOEF")
	if sec == nil {
		Te.Fatal("LENNARD_JONES_ACOEF section missing")
	}
	last, _ := sec.Token(sec.Len() - 1)
	if strings.ContainsRune(last.Raw, '\r') {
		Te.Errorf("token carries a carriage return: %q", last.Raw)
	}
	values, err := f.SectionFloats("LENNARD_JONES_ACOEF")
	if err != nil {
		Te.Fatal(err)
	}
	if values[2] != 6.06829342e+05 {
		Te.Errorf("trailing token decoded as %v", values[2])
	}
	p, err := ParsePointers(f)
	if err != nil || p.Natom != 5 {
		Te.Errorf("CRLF pointer decode: %+v %v", p, err)
	}
}

func TestModeRoundTrip(Te *testing.T) {
	modes := []Mode{ModeAtom, ModeBond, ModeAngle, ModeDihedral,
		ModeImproper, ModeOneFourNonbonded, ModeNonBonded}
	arities := []int{1, 2, 3, 4, 4, 2, 2}
	for i, mode := range modes {
		back, ok := ParseMode(mode.String())
		if !ok || back != mode {
			Te.Errorf("mode %v did not round-trip through %q", mode, mode.String())
		}
		if mode.NAtoms() != arities[i] {
			Te.Errorf("mode %v carries %d serials, want %d", mode, mode.NAtoms(), arities[i])
		}
	}
	if _, ok := ParseMode("zork"); ok {
		Te.Error("unknown mode name parsed")
	}
}

func TestTokenParsing(Te *testing.T) {
	if v, err := (Token{Raw: "  2."}).Int(); err != nil || v != 2 {
		Te.Errorf("float-form integer: %v %v", v, err)
	}
	if v, err := (Token{Raw: "    "}).Int(); err != nil || v != 0 {
		Te.Errorf("blank integer: %v %v", v, err)
	}
	if v, err := (Token{Raw: " 1.5d-02"}).Float(); err != nil || v != 0.015 {
		Te.Errorf("lowercase d exponent: %v %v", v, err)
	}
	if _, err := (Token{Raw: "zork"}).Int(); err == nil {
		Te.Error("garbage integer token was accepted")
	}
}

func pointersText(values []int) string {
	var b strings.Builder
	b.WriteString("%FLAG POINTERS\n%FORMAT(10I8)\n")
	for i, v := range values {
		fmt.Fprintf(&b, "%8d", v)
		if (i+1)%10 == 0 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func TestPointers(Te *testing.T) {
	f, err := ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	if p.Natom != 5 || p.Ntypes != 2 || p.Mbona != 3 || p.Mtheta != 2 || p.Mphia != 1 {
		Te.Errorf("bad pointer decode %+v", p)
	}
	if p.HasNcopy {
		Te.Error("31-value POINTERS reported NCOPY")
	}
}

func TestPointersVariants(Te *testing.T) {
	base := make([]int, 31)
	base[0] = 3
	with32 := append(append([]int{}, base...), 7)
	f, err := ParseString(pointersText(with32))
	if err != nil {
		Te.Fatal(err)
	}
	p, err := ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	if !p.HasNcopy || p.Ncopy != 7 {
		Te.Errorf("NCOPY not decoded: %+v", p)
	}
	short := base[:30]
	f, err = ParseString(pointersText(short))
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := ParsePointers(f); err == nil {
		Te.Error("30-value POINTERS was accepted")
	}
	negative := append([]int{}, base...)
	negative[2] = -1
	f, err = ParseString(pointersText(negative))
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := ParsePointers(f); err == nil {
		Te.Error("negative POINTERS count was accepted")
	}
}

func TestSectionLengthChecks(Te *testing.T) {
	f, err := ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := f.Floats("BOND_FORCE_CONSTANT", 3); err == nil {
		Te.Error("length mismatch was accepted")
	}
	if _, err := f.Floats("NO_SUCH_SECTION", 2); err == nil {
		Te.Error("missing required section was accepted")
	}
	//Absent optional sections are fine, truncated ones are not.
	values, err := f.OptionalFloats("CAP_INFO", 4)
	if err != nil || values != nil {
		Te.Errorf("absent optional section: %v %v", values, err)
	}
	if _, err := f.OptionalFloats("SCEE_SCALE_FACTOR", 2); err == nil {
		Te.Error("truncated optional section was accepted")
	}
	scee, err := f.OptionalFloats("SCEE_SCALE_FACTOR", 1)
	if err != nil || len(scee) != 1 || scee[0] != 1.2 {
		Te.Errorf("SCEE decode: %v %v", scee, err)
	}
}

func TestRecordDecoding(Te *testing.T) {
	f, err := ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	bonds, err := Bonds(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(bonds) != 3 {
		Te.Fatalf("decoded %d bonds, want 3", len(bonds))
	}
	if bonds[1].I != 2 || bonds[1].J != 3 || bonds[1].ParamIndex != 2 {
		Te.Errorf("bond record %+v", bonds[1])
	}
	dihedrals, err := Dihedrals(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(dihedrals) != 1 || dihedrals[0].Improper || dihedrals[0].Ignore14 {
		Te.Errorf("dihedral record %+v", dihedrals[0])
	}
	if dihedrals[0].Ordinal != 1 {
		Te.Errorf("first term ordinal %d", dihedrals[0].Ordinal)
	}
}

//Improper classification comes from the sign of the fourth pointer
//alone, not from the record's geometry.
func TestImproperFlag(Te *testing.T) {
	f, err := ReadFile("testdata/star.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	dihedrals, err := Dihedrals(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(dihedrals) != 1 {
		Te.Fatalf("decoded %d dihedrals, want 1", len(dihedrals))
	}
	d := dihedrals[0]
	if !d.Improper {
		Te.Error("negative fourth pointer not flagged improper")
	}
	if d.I != 1 || d.J != 3 || d.K != 2 || d.L != 4 {
		Te.Errorf("improper serials %d %d %d %d", d.I, d.J, d.K, d.L)
	}
}

func TestAtoms(Te *testing.T) {
	f, err := ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	atoms, err := BuildAtoms(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	if len(atoms) != 5 {
		Te.Fatalf("built %d atoms, want 5", len(atoms))
	}
	a := atoms[3]
	if a.Serial != 4 || a.Name != "C4" || a.Type != "CT" || a.TypeIndex != 1 {
		Te.Errorf("atom 4 decode %+v", a)
	}
	if a.ResidueIndex != 1 || a.ResidueLabel != "MOL" || a.AtomicNumber != 6 {
		Te.Errorf("atom 4 residue/element %+v", a)
	}
}

func TestReadFileCompressed(Te *testing.T) {
	plain, err := os.ReadFile("testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	gzPath := filepath.Join(dir, "small.prmtop.gz")
	fout, err := os.Create(gzPath)
	if err != nil {
		Te.Fatal(err)
	}
	gw := gzip.NewWriter(fout)
	if _, err := gw.Write(plain); err != nil {
		Te.Fatal(err)
	}
	gw.Close()
	fout.Close()
	zstPath := filepath.Join(dir, "small.prmtop.zst")
	fout, err = os.Create(zstPath)
	if err != nil {
		Te.Fatal(err)
	}
	zw, err := zstd.NewWriter(fout)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := zw.Write(plain); err != nil {
		Te.Fatal(err)
	}
	zw.Close()
	fout.Close()
	for _, path := range []string{gzPath, zstPath} {
		f, err := ReadFile(path)
		if err != nil {
			Te.Fatalf("%s: %v", path, err)
		}
		if f.Text() != string(plain) {
			Te.Errorf("%s: decompressed text differs from the original", path)
		}
	}
}
