package conversation

import (
	"errors"
	"sync"
	"time"
)

type StepKind int

const (
	// KindText expects a free-text answer.
	KindText StepKind = iota
	// KindChoice expects one of the step's fixed options.
	KindChoice
	// KindMedia accepts a media attachment or a free-text reference.
	KindMedia
)

// Input is one user answer. Text holds typed answers, Choice a pressed
// option, FileID a media attachment (with its Caption when present).
type Input struct {
	Text    string
	Choice  string
	FileID  string
	Caption string
}

// Option is a fixed answer rendered as a button.
type Option struct {
	Label string
	Value string
}

// Step is one data-collection stop in a flow. Validate turns raw input into
// the typed value stored under Field; returning an error re-prompts without
// advancing.
type Step struct {
	Field  string
	Prompt string
	// PromptFunc, when set, builds the prompt from the answers collected so
	// far (confirmation steps show a summary). It wins over Prompt.
	PromptFunc func(Record) string
	Kind       StepKind
	Options    []Option
	Skippable  bool
	Validate   func(Input) (interface{}, error)
}

func (st *Step) prompt(rec Record) string {
	if st.PromptFunc != nil {
		return st.PromptFunc(rec)
	}
	return st.Prompt
}

// Record accumulates validated answers keyed by step field name.
type Record map[string]interface{}

// Flow is a declaratively ordered sequence of steps plus the finalizer that
// materializes the completed record.
type Flow struct {
	Name     string
	Steps    []Step
	Finalize func(identity int64, rec Record) error
}

type Status int

const (
	// StatusPrompt: show Step's prompt, waiting for an answer.
	StatusPrompt Status = iota
	// StatusRetry: the answer failed validation, same step again.
	StatusRetry
	// StatusDone: the flow finished and the finalizer ran.
	StatusDone
	// StatusCancelled: the session is gone, nothing was created.
	StatusCancelled
)

type StepResult struct {
	Status Status
	Step   *Step
	// Prompt is the resolved prompt text for Step.
	Prompt string
	// Hint carries the validator's message on retry.
	Hint string
	// Record is the completed record on StatusDone.
	Record Record
}

type session struct {
	flow      *Flow
	stepIndex int
	record    Record
	startedAt time.Time
}

var ErrNoSession = errors.New("no active conversation")

// Engine tracks at most one active flow per identity. All transitions for
// one identity are serialized behind the engine lock, so a session can never
// observe a half-applied step.
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func NewEngine() *Engine {
	return &Engine{sessions: make(map[int64]*session)}
}

// Start opens a session at the first step. Any previous session for this
// identity is discarded: starting a flow mid-way through another restarts
// from scratch.
func (e *Engine) Start(flow *Flow, identity int64) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &session{
		flow:      flow,
		record:    make(Record),
		startedAt: time.Now(),
	}
	e.sessions[identity] = s
	first := &flow.Steps[0]
	return StepResult{Status: StatusPrompt, Step: first, Prompt: first.prompt(s.record)}
}

// Active reports the name of the identity's running flow, if any.
func (e *Engine) Active(identity int64) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[identity]
	if !ok {
		return "", false
	}
	return s.flow.Name, true
}

// Current returns the step the identity's session is waiting on.
func (e *Engine) Current(identity int64) (*Step, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[identity]
	if !ok {
		return nil, false
	}
	return &s.flow.Steps[s.stepIndex], true
}

// Submit validates the answer for the current step. Validation failure is a
// conversational retry, not an error: the session and record stay untouched
// and the same step is prompted again. On the last step the finalizer runs
// with the completed record; if it fails the session is preserved so the
// user can retry without re-entering earlier answers.
func (e *Engine) Submit(identity int64, in Input) (StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[identity]
	if !ok {
		return StepResult{}, ErrNoSession
	}

	step := &s.flow.Steps[s.stepIndex]
	value, err := step.Validate(in)
	if err != nil {
		return StepResult{Status: StatusRetry, Step: step, Prompt: step.prompt(s.record), Hint: err.Error()}, nil
	}

	s.record[step.Field] = value
	return e.advance(identity, s)
}

// Skip records the step's empty value and advances. Only skippable steps
// can be skipped.
func (e *Engine) Skip(identity int64) (StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[identity]
	if !ok {
		return StepResult{}, ErrNoSession
	}

	step := &s.flow.Steps[s.stepIndex]
	if !step.Skippable {
		return StepResult{Status: StatusRetry, Step: step, Prompt: step.prompt(s.record)}, nil
	}
	s.record[step.Field] = ""
	return e.advance(identity, s)
}

func (e *Engine) advance(identity int64, s *session) (StepResult, error) {
	s.stepIndex++
	if s.stepIndex < len(s.flow.Steps) {
		next := &s.flow.Steps[s.stepIndex]
		return StepResult{Status: StatusPrompt, Step: next, Prompt: next.prompt(s.record)}, nil
	}

	if err := s.flow.Finalize(identity, s.record); err != nil {
		// Keep the session; the user keeps prior answers and may retry.
		s.stepIndex--
		return StepResult{}, err
	}
	rec := s.record
	delete(e.sessions, identity)
	return StepResult{Status: StatusDone, Record: rec}, nil
}

// GoBack walks one step backward in the flow's static order, discarding the
// value of the step being left so it is re-collected. At the first step it
// cancels the flow instead.
func (e *Engine) GoBack(identity int64) (StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sessions[identity]
	if !ok {
		return StepResult{}, ErrNoSession
	}

	if s.stepIndex == 0 {
		delete(e.sessions, identity)
		return StepResult{Status: StatusCancelled}, nil
	}

	s.stepIndex--
	step := &s.flow.Steps[s.stepIndex]
	delete(s.record, step.Field)
	return StepResult{Status: StatusPrompt, Step: step, Prompt: step.prompt(s.record)}, nil
}

// Cancel discards the session unconditionally. Missing sessions are fine.
func (e *Engine) Cancel(identity int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.sessions, identity)
}
