package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a bank file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultMarks is assigned to written questions that don't declare marks.
const DefaultMarks = 10

var validate = validator.New(validator.WithRequiredStructEnabled())

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown bank format for %q: want .json, .yaml or .yml", path)
}

// Load reads and parses a bank file.
func Load(path string) (*Bank, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank: %w", err)
	}
	b, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return b, nil
}

// Parse decodes, validates and normalizes a bank document. Envelope problems
// (bad syntax, wrong shape, unsupported version) fail the whole document.
// Malformed question records, and records reusing an ID already taken
// anywhere in the bank, are dropped and listed in Bank.Dropped.
func Parse(data []byte, format Format) (*Bank, error) {
	generic, err := decodeGeneric(data, format)
	if err != nil {
		return nil, err
	}
	if err := validateEnvelope(generic); err != nil {
		return nil, err
	}

	// Round-trip through JSON so YAML and JSON share one typed decode path.
	normalized, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (want %s.x.y)", ErrUnsupportedVersion, doc.Version, SupportedMajor)
	}

	b := &Bank{Version: doc.Version}
	seenTopics := make(map[string]bool)
	owners := make(map[string]string) // question ID -> topic ID
	for _, td := range doc.Topics {
		if seenTopics[td.ID] {
			return nil, fmt.Errorf("duplicate topic id %q", td.ID)
		}
		seenTopics[td.ID] = true
		b.Topics = append(b.Topics, buildTopic(td, owners, &b.Dropped))
	}
	b.combineMarathons()
	return b, nil
}

func decodeGeneric(data []byte, format Format) (any, error) {
	var out any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&out); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return nil, errors.New("invalid YAML: multiple documents are not supported")
			}
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown bank format %q", format)
	}
	return out, nil
}

type document struct {
	Version string     `json:"version"`
	Topics  []topicDoc `json:"topics"`
}

type topicDoc struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Kind        Kind              `json:"kind"`
	Marathon    bool              `json:"marathon"`
	Questions   []json.RawMessage `json:"questions"`
}

type choiceRecord struct {
	ID          string   `json:"id" validate:"required"`
	Prompt      string   `json:"prompt" validate:"required"`
	Options     []string `json:"options" validate:"min=2,dive,required"`
	Correct     *int     `json:"correct" validate:"required,gte=0"`
	Explanation string   `json:"explanation"`
	Hint        string   `json:"hint"`
}

type writtenRecord struct {
	ID       string   `json:"id" validate:"required"`
	Prompt   string   `json:"prompt" validate:"required"`
	Answer   string   `json:"answer" validate:"required"`
	Keywords []string `json:"keywords" validate:"min=1,dive,required"`
	Marks    int      `json:"marks" validate:"gte=0"`
	Hint     string   `json:"hint"`
}

// buildTopic decodes td's questions. owners records which topic claimed each
// question ID so far; a later record with a claimed ID is dropped.
func buildTopic(td topicDoc, owners map[string]string, dropped *[]Dropped) Topic {
	t := Topic{
		ID:          td.ID,
		Title:       td.Title,
		Description: td.Description,
		Kind:        td.Kind,
		Marathon:    td.Marathon,
	}
	for i, raw := range td.Questions {
		q, err := buildQuestion(td.Kind, raw)
		if err == nil {
			if owner, taken := owners[q.ID]; taken {
				err = fmt.Errorf("duplicate question id %q (first used in topic %q)", q.ID, owner)
			}
		}
		if err != nil {
			*dropped = append(*dropped, Dropped{TopicID: td.ID, Index: i, Reason: err.Error()})
			continue
		}
		owners[q.ID] = td.ID
		t.Questions = append(t.Questions, q)
	}
	return t
}

func buildQuestion(kind Kind, raw json.RawMessage) (Question, error) {
	switch kind {
	case KindChoice:
		var r choiceRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return Question{}, fmt.Errorf("decode: %w", err)
		}
		if err := validate.Struct(r); err != nil {
			return Question{}, err
		}
		if *r.Correct >= len(r.Options) {
			return Question{}, fmt.Errorf("correct index %d out of range for %d options", *r.Correct, len(r.Options))
		}
		return Question{
			ID:          r.ID,
			Prompt:      r.Prompt,
			Kind:        KindChoice,
			Options:     r.Options,
			Correct:     *r.Correct,
			Explanation: r.Explanation,
			Hint:        r.Hint,
			Marks:       1,
		}, nil

	case KindWritten:
		var r writtenRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			return Question{}, fmt.Errorf("decode: %w", err)
		}
		if err := validate.Struct(r); err != nil {
			return Question{}, err
		}
		marks := r.Marks
		if marks == 0 {
			marks = DefaultMarks
		}
		return Question{
			ID:       r.ID,
			Prompt:   r.Prompt,
			Kind:     KindWritten,
			Answer:   r.Answer,
			Keywords: r.Keywords,
			Marks:    marks,
			Hint:     r.Hint,
		}, nil
	}
	return Question{}, fmt.Errorf("unknown kind %q", kind)
}
