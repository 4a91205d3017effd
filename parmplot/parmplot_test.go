package parmplot

import (
	"os"
	"path/filepath"
	"testing"

	parm "github.com/rmera/goparm"
	"github.com/rmera/goparm/tables"
)

func loadSmall(Te *testing.T) ([]parm.Atom, *tables.Set) {
	f, err := parm.ReadFile("../testdata/small.prmtop")
	if err != nil {
		Te.Fatal(err)
	}
	p, err := parm.ParsePointers(f)
	if err != nil {
		Te.Fatal(err)
	}
	atoms, err := parm.BuildAtoms(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	lj, err := parm.NewLJParams(f, p)
	if err != nil {
		Te.Fatal(err)
	}
	s, err := tables.Build(f, p, atoms, lj)
	if err != nil {
		Te.Fatal(err)
	}
	return atoms, s
}

func TestChargeHistogram(Te *testing.T) {
	atoms, _ := loadSmall(Te)
	name := filepath.Join(Te.TempDir(), "charges.png")
	if err := ChargeHistogram(atoms, 10, name); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil || info.Size() == 0 {
		Te.Errorf("histogram file not written: %v", err)
	}
}

func TestInteractionCounts(Te *testing.T) {
	_, s := loadSmall(Te)
	name := filepath.Join(Te.TempDir(), "counts.png")
	if err := InteractionCounts(s, name); err != nil {
		Te.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil || info.Size() == 0 {
		Te.Errorf("chart file not written: %v", err)
	}
}
