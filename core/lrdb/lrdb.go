// Package lrdb models the ligand-receptor interaction database used for
// communication inference. A Database is loaded once from YAML and treated as
// immutable after it is attached to an analysis object; Detect derives the
// subset of pairs actually usable for a given expression matrix.
package lrdb

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/adalundhe/crosstalk/core/matrix"
)

var (
	ErrInvalidDatabase = errors.New("invalid ligand-receptor database")
	ErrParseDatabase   = errors.New("failed to parse ligand-receptor database")
)

// Pair is one ligand-receptor interaction and its annotation.
type Pair struct {
	// Name uniquely identifies the interaction, e.g. "TGFB1_TGFBR1_TGFBR2".
	Name string `yaml:"name"`

	// Ligand and Receptor are the primary gene symbols.
	Ligand   string `yaml:"ligand"`
	Receptor string `yaml:"receptor"`

	// ReceptorSubunits lists additional receptor-complex genes, all of which
	// must be expressed for the pair to be detectable.
	ReceptorSubunits []string `yaml:"receptor_subunits,omitempty"`

	// Pathway names the signaling pathway the pair belongs to.
	Pathway string `yaml:"pathway"`

	// Annotation classifies the interaction, e.g. "Secreted Signaling".
	Annotation string `yaml:"annotation,omitempty"`
}

// Database is a curated set of ligand-receptor interactions.
type Database struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
	Pairs   []Pair `yaml:"interactions"`
}

// Load reads a YAML database from disk.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a YAML database from r and validates it.
func Parse(r io.Reader) (*Database, error) {
	var db Database
	if err := yaml.NewDecoder(r).Decode(&db); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseDatabase, err)
	}
	if err := db.validate(); err != nil {
		return nil, err
	}
	return &db, nil
}

func (db *Database) validate() error {
	if db.Name == "" {
		return fmt.Errorf("%w: missing database name", ErrInvalidDatabase)
	}
	if len(db.Pairs) == 0 {
		return fmt.Errorf("%w: no interactions", ErrInvalidDatabase)
	}
	seen := make(map[string]bool, len(db.Pairs))
	for i, p := range db.Pairs {
		if p.Name == "" {
			return fmt.Errorf("%w: interaction %d has no name", ErrInvalidDatabase, i)
		}
		if p.Ligand == "" || p.Receptor == "" {
			return fmt.Errorf("%w: interaction %q is missing ligand or receptor", ErrInvalidDatabase, p.Name)
		}
		if p.Pathway == "" {
			return fmt.Errorf("%w: interaction %q has no pathway", ErrInvalidDatabase, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate interaction %q", ErrInvalidDatabase, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Genes returns the sorted union of all gene symbols the database references.
func (db *Database) Genes() []string {
	set := make(map[string]bool)
	for _, p := range db.Pairs {
		set[p.Ligand] = true
		set[p.Receptor] = true
		for _, s := range p.ReceptorSubunits {
			set[s] = true
		}
	}
	genes := make([]string, 0, len(set))
	for g := range set {
		genes = append(genes, g)
	}
	sort.Strings(genes)
	return genes
}

// PathwayOf reports the pathway of the named pair.
func (db *Database) PathwayOf(pair string) (string, bool) {
	for _, p := range db.Pairs {
		if p.Name == pair {
			return p.Pathway, true
		}
	}
	return "", false
}

// Selection is the subset of database pairs usable against one expression
// matrix: the derived lr_info of an analysis object.
type Selection struct {
	pairs []Pair
}

// NewSelection builds a selection from an explicit pair list, for
// collaborators that derive usable pairs by other means than Detect.
func NewSelection(pairs []Pair) *Selection {
	return &Selection{pairs: append([]Pair(nil), pairs...)}
}

// Pairs returns the selected interactions in database order.
func (s *Selection) Pairs() []Pair { return s.pairs }

// Len returns the number of selected pairs.
func (s *Selection) Len() int { return len(s.pairs) }

// Names returns the selected pair names in database order.
func (s *Selection) Names() []string {
	names := make([]string, len(s.pairs))
	for i, p := range s.pairs {
		names[i] = p.Name
	}
	return names
}

// PathwayOf reports the pathway of the named selected pair.
func (s *Selection) PathwayOf(pair string) (string, bool) {
	for _, p := range s.pairs {
		if p.Name == pair {
			return p.Pathway, true
		}
	}
	return "", false
}

// Detect returns the pairs whose ligand, receptor, and receptor subunits are
// all expressed in m: present as a row with a positive value in at least
// minCells cells. NaN entries do not count as expression.
func (db *Database) Detect(m matrix.Matrix, minCells int) *Selection {
	if minCells < 1 {
		minCells = 1
	}
	expressed := make(map[string]bool)
	for _, gene := range db.Genes() {
		expressed[gene] = isExpressed(m, gene, minCells)
	}

	sel := &Selection{}
	for _, p := range db.Pairs {
		if !expressed[p.Ligand] || !expressed[p.Receptor] {
			continue
		}
		usable := true
		for _, s := range p.ReceptorSubunits {
			if !expressed[s] {
				usable = false
				break
			}
		}
		if usable {
			sel.pairs = append(sel.pairs, p)
		}
	}
	return sel
}

func isExpressed(m matrix.Matrix, gene string, minCells int) bool {
	i := matrix.RowIndex(m, gene)
	if i < 0 {
		return false
	}
	_, c := m.Dims()
	count := 0
	for j := 0; j < c; j++ {
		v := m.At(i, j)
		if v > 0 && !math.IsNaN(v) {
			count++
			if count >= minCells {
				return true
			}
		}
	}
	return false
}
