package verifier

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/mahdiidarabi/sigma-proofs/pkg/sigma"
)

// CaseParser defines the interface for reading verification cases from
// various sources.
type CaseParser interface {
	// ParseCases parses cases from a source and returns them.
	ParseCases(source string) ([]*Case, error)
}

// Default field names shared by JSONParser and CSVParser.
const (
	DefaultNameField        = "name"
	DefaultPropositionField = "proposition"
	DefaultProofField       = "proof"
	DefaultMessageField     = "message"
)

// JSONParser parses cases from JSON files.
type JSONParser struct {
	NameField        string // Field name for the case name (default: "name", optional)
	PropositionField string // Field name for the proposition (default: "proposition")
	ProofField       string // Field name for the hex proof (default: "proof")
	MessageField     string // Field name for the hex message (default: "message")
}

// ParseCases parses cases from a JSON file.
//
// Expected format:
// [
//
//	{"name": "alice", "proposition": "cd02...", "proof": "...", "message": "..."},
//	{"proposition": "anyOf(proveDlog(02...), proveDlog(03...))", "proof": "...", "message": ""}
//
// ]
func (p *JSONParser) ParseCases(jsonFile string) ([]*Case, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	defer file.Close()
	return p.Decode(file)
}

// Decode reads cases from r.
func (p *JSONParser) Decode(r io.Reader) ([]*Case, error) {
	var items []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}

	f := fieldNames(p.NameField, p.PropositionField, p.ProofField, p.MessageField)
	cases := make([]*Case, 0, len(items))
	for i, item := range items {
		get := func(field string) (string, bool, error) {
			v, ok := item[field]
			if !ok || v == nil {
				return "", false, nil
			}
			s, isString := v.(string)
			if !isString {
				return "", true, errors.Errorf("case %d: field %q must be a string", i, field)
			}
			return s, true, nil
		}
		c, err := f.build(i, get)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// CSVParser parses cases from CSV files with a header row.
type CSVParser struct {
	NameCol        string // Column name for the case name (default: "name", optional)
	PropositionCol string // Column name for the proposition (default: "proposition")
	ProofCol       string // Column name for the hex proof (default: "proof")
	MessageCol     string // Column name for the hex message (default: "message")
}

// ParseCases parses cases from a CSV file.
func (p *CSVParser) ParseCases(csvFile string) ([]*Case, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()
	return p.Decode(file)
}

// Decode reads cases from r.
func (p *CSVParser) Decode(r io.Reader) ([]*Case, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	f := fieldNames(p.NameCol, p.PropositionCol, p.ProofCol, p.MessageCol)
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	if _, ok := index[f.proposition]; !ok {
		return nil, errors.Errorf("missing required column %q", f.proposition)
	}
	if _, ok := index[f.proof]; !ok {
		return nil, errors.Errorf("missing required column %q", f.proof)
	}

	cases := make([]*Case, 0)
	for i := 0; ; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read record")
		}
		get := func(field string) (string, bool, error) {
			idx, ok := index[field]
			if !ok || idx >= len(record) {
				return "", false, nil
			}
			return record[idx], true, nil
		}
		c, err := f.build(i, get)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

type fields struct {
	name, proposition, proof, message string
}

func fieldNames(name, proposition, proof, message string) fields {
	f := fields{name: name, proposition: proposition, proof: proof, message: message}
	if f.name == "" {
		f.name = DefaultNameField
	}
	if f.proposition == "" {
		f.proposition = DefaultPropositionField
	}
	if f.proof == "" {
		f.proof = DefaultProofField
	}
	if f.message == "" {
		f.message = DefaultMessageField
	}
	return f
}

// build assembles case i from the values returned by get. The proposition
// and proof are required; an empty proof string is the empty proof.
func (f fields) build(i int, get func(string) (string, bool, error)) (*Case, error) {
	c := &Case{}

	name, _, err := get(f.name)
	if err != nil {
		return nil, err
	}
	c.Name = name

	propStr, ok, err := get(f.proposition)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Errorf("case %d: missing %s field", i, f.proposition)
	}
	c.Proposition, err = ParseProposition(propStr)
	if err != nil {
		return nil, errors.Wrapf(err, "case %d: failed to parse %s", i, f.proposition)
	}

	proofStr, ok, err := get(f.proof)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Errorf("case %d: missing %s field", i, f.proof)
	}
	proof, err := hexDecode(proofStr)
	if err != nil {
		return nil, errors.Wrapf(err, "case %d: failed to parse %s", i, f.proof)
	}
	c.Proof = sigma.ProofBytes(proof)

	msgStr, _, err := get(f.message)
	if err != nil {
		return nil, err
	}
	c.Message, err = hexDecode(msgStr)
	if err != nil {
		return nil, errors.Wrapf(err, "case %d: failed to parse %s", i, f.message)
	}
	return c, nil
}

// ParseProposition reads a proposition given either as hex of its binary
// encoding or in the allOf/anyOf/proveDlog text notation.
func ParseProposition(s string) (sigma.SigmaBoolean, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "(") {
		return sigma.ParseSigmaBooleanExpr(s)
	}
	b, err := hexDecode(s)
	if err != nil {
		return nil, errors.Wrap(sigma.ErrSerialization, err.Error())
	}
	return sigma.ParseSigmaBoolean(b)
}

// hexDecode decodes a hex string, handling 0x prefix
func hexDecode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex")
	}
	return b, nil
}
