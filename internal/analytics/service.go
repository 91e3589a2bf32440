// Package analytics is the facade the transport layer talks to. It wires
// the translator, executor, and validator together and exposes the three
// operations of the simulated query system.
package analytics

import (
	"time"

	"github.com/querysim/querysim/internal/errors"
	"github.com/querysim/querysim/internal/logging"
	"github.com/querysim/querysim/internal/schema"
	"github.com/querysim/querysim/internal/synth"
	"github.com/querysim/querysim/internal/translate"
)

// Service processes natural-language analytics queries against the mock
// catalog. It is safe for concurrent use.
type Service struct {
	registry   *schema.Registry
	translator *translate.Translator
	validator  *translate.Validator
	executor   *synth.Executor
	logger     *logging.Logger
}

// NewService builds a service over the catalog. It verifies the catalog
// against every table and column the translation rules can emit and refuses
// to construct on a mismatch; a broken registry must fail at startup, not
// per request.
func NewService(registry *schema.Registry, seed int64, logger *logging.Logger) (*Service, error) {
	if err := registry.Verify(translate.SchemaReferences()); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeRegistry, "registry self-check failed")
	}

	if logger == nil {
		logger = logging.GetLogger()
	}

	translator := translate.NewTranslator()

	return &Service{
		registry:   registry,
		translator: translator,
		validator:  translate.NewValidator(translator, registry),
		executor:   synth.New(registry, seed),
		logger:     logger,
	}, nil
}

// QueryResult is the outcome of translating and executing one query.
type QueryResult struct {
	OriginalQuery   string         `json:"original_query"`
	TranslatedQuery string         `json:"translated_query"`
	Result          []synth.Record `json:"result"`
	ExecutionTime   float64        `json:"execution_time"` // seconds
}

// ExplainResult describes how a query would be processed.
type ExplainResult struct {
	OriginalQuery string   `json:"original_query"`
	Summary       string   `json:"summary"`
	Steps         []string `json:"steps"`
}

// ValidationResult reports the pre-flight feasibility checks. Suggestions is
// omitted entirely for valid queries.
type ValidationResult struct {
	OriginalQuery string   `json:"original_query"`
	IsValid       bool     `json:"is_valid"`
	Reasons       []string `json:"reasons"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

// Process translates the text, synthesizes result rows, and reports the
// wall-clock duration of the two stages.
func (s *Service) Process(text string) (*QueryResult, error) {
	start := time.Now()

	query := s.translator.Translate(text)

	rows, err := s.executor.Execute(query)
	if err != nil {
		// Only a registry inconsistency lands here; construction-time
		// verification is supposed to make this unreachable.
		s.logger.WithField("query", text).ErrorWithErr("synthesis failed", err)
		return nil, err
	}

	translated := query.String()

	s.logger.WithFields(map[string]interface{}{
		"kind": string(query.Kind),
		"rows": len(rows),
	}).Debugf("processed query: %s", translated)

	return &QueryResult{
		OriginalQuery:   text,
		TranslatedQuery: translated,
		Result:          rows,
		ExecutionTime:   time.Since(start).Seconds(),
	}, nil
}

// Explain returns the fixed processing narrative for the text.
func (s *Service) Explain(text string) *ExplainResult {
	query := s.translator.Translate(text)
	explanation := translate.Explain(text, query)

	return &ExplainResult{
		OriginalQuery: text,
		Summary:       explanation.Summary,
		Steps:         explanation.Steps,
	}
}

// Validate runs the feasibility checks without translating.
func (s *Service) Validate(text string) *ValidationResult {
	v := s.validator.Validate(text)

	return &ValidationResult{
		OriginalQuery: text,
		IsValid:       v.Valid,
		Reasons:       v.Reasons,
		Suggestions:   v.Suggestions,
	}
}

// Registry exposes the catalog for collaborators that bootstrap storage or
// report schema information.
func (s *Service) Registry() *schema.Registry {
	return s.registry
}

// Executor exposes the record synthesizer for the storage bootstrap.
func (s *Service) Executor() *synth.Executor {
	return s.executor
}
