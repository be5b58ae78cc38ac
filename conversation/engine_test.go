package conversation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlow(finalize func(int64, Record) error) *Flow {
	if finalize == nil {
		finalize = func(int64, Record) error { return nil }
	}
	return &Flow{
		Name: "test",
		Steps: []Step{
			{Field: "name", Prompt: "name?", Validate: NonEmptyText},
			{Field: "note", Prompt: "note?", Skippable: true, Validate: OptionalText},
			{Field: "price", Prompt: "price?", Validate: Decimal},
		},
		Finalize: finalize,
	}
}

func TestStartPromptsFirstStep(t *testing.T) {
	e := NewEngine()
	res := e.Start(testFlow(nil), 1)

	assert.Equal(t, StatusPrompt, res.Status)
	assert.Equal(t, "name?", res.Prompt)

	name, ok := e.Active(1)
	require.True(t, ok)
	assert.Equal(t, "test", name)
}

func TestSubmitAdvancesThroughFlow(t *testing.T) {
	var got Record
	e := NewEngine()
	e.Start(testFlow(func(_ int64, rec Record) error {
		got = rec
		return nil
	}), 1)

	res, err := e.Submit(1, Input{Text: "Анна"})
	require.NoError(t, err)
	assert.Equal(t, StatusPrompt, res.Status)
	assert.Equal(t, "note?", res.Prompt)

	res, err = e.Submit(1, Input{Text: "-"})
	require.NoError(t, err)
	assert.Equal(t, StatusPrompt, res.Status)

	res, err = e.Submit(1, Input{Text: "249,90"})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, res.Status)

	assert.Equal(t, "Анна", got["name"])
	assert.Equal(t, "", got["note"])
	assert.Equal(t, 249.90, got["price"])

	_, ok := e.Active(1)
	assert.False(t, ok, "session must be gone after completion")
}

func TestValidationFailureRepeatsStep(t *testing.T) {
	e := NewEngine()
	e.Start(testFlow(nil), 1)

	res, err := e.Submit(1, Input{Text: "   "})
	require.NoError(t, err, "a failed validation is a retry, not an error")
	assert.Equal(t, StatusRetry, res.Status)
	assert.NotEmpty(t, res.Hint)
	assert.Equal(t, "name?", res.Prompt)

	// The step did not move.
	step, ok := e.Current(1)
	require.True(t, ok)
	assert.Equal(t, "name", step.Field)
}

func TestSkipOnlySkippableSteps(t *testing.T) {
	e := NewEngine()
	e.Start(testFlow(nil), 1)

	res, err := e.Skip(1)
	require.NoError(t, err)
	assert.Equal(t, StatusRetry, res.Status, "first step is mandatory")

	_, err = e.Submit(1, Input{Text: "Анна"})
	require.NoError(t, err)

	res, err = e.Skip(1)
	require.NoError(t, err)
	assert.Equal(t, StatusPrompt, res.Status)
	assert.Equal(t, "price?", res.Prompt)
}

func TestGoBackDiscardsAnswer(t *testing.T) {
	e := NewEngine()
	e.Start(testFlow(func(_ int64, rec Record) error {
		_, present := rec["note"]
		require.True(t, present)
		return nil
	}), 1)

	_, err := e.Submit(1, Input{Text: "Анна"})
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "у окна"})
	require.NoError(t, err)

	res, err := e.GoBack(1)
	require.NoError(t, err)
	assert.Equal(t, StatusPrompt, res.Status)
	assert.Equal(t, "note?", res.Prompt)

	step, ok := e.Current(1)
	require.True(t, ok)
	assert.Equal(t, "note", step.Field)
}

func TestGoBackAtFirstStepCancels(t *testing.T) {
	e := NewEngine()
	e.Start(testFlow(nil), 1)

	res, err := e.GoBack(1)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, res.Status)

	_, ok := e.Active(1)
	assert.False(t, ok)
}

func TestCancelDropsSession(t *testing.T) {
	e := NewEngine()
	e.Start(testFlow(nil), 1)
	e.Cancel(1)

	_, err := e.Submit(1, Input{Text: "x"})
	assert.ErrorIs(t, err, ErrNoSession)

	// Cancelling a missing session is a no-op.
	e.Cancel(99)
}

func TestFinalizerErrorKeepsSession(t *testing.T) {
	calls := 0
	e := NewEngine()
	e.Start(testFlow(func(int64, Record) error {
		calls++
		if calls == 1 {
			return errors.New("db down")
		}
		return nil
	}), 1)

	_, err := e.Submit(1, Input{Text: "Анна"})
	require.NoError(t, err)
	_, err = e.Submit(1, Input{Text: "-"})
	require.NoError(t, err)

	_, err = e.Submit(1, Input{Text: "100"})
	require.Error(t, err)

	// Prior answers survive; answering the last step again succeeds.
	res, err := e.Submit(1, Input{Text: "100"})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, res.Status)
	assert.Equal(t, "Анна", res.Record["name"])
}

func TestStartReplacesRunningFlow(t *testing.T) {
	e := NewEngine()
	e.Start(testFlow(nil), 1)
	_, err := e.Submit(1, Input{Text: "Анна"})
	require.NoError(t, err)

	res := e.Start(testFlow(nil), 1)
	assert.Equal(t, "name?", res.Prompt, "restart begins at the first step")
}

func TestSessionsAreIndependent(t *testing.T) {
	e := NewEngine()
	e.Start(testFlow(nil), 1)
	e.Start(testFlow(nil), 2)

	_, err := e.Submit(1, Input{Text: "Анна"})
	require.NoError(t, err)

	step, ok := e.Current(2)
	require.True(t, ok)
	assert.Equal(t, "name", step.Field, "identity 2 has not moved")
}

func TestPromptFuncSeesCollectedAnswers(t *testing.T) {
	flow := &Flow{
		Name: "confirm",
		Steps: []Step{
			{Field: "title", Prompt: "title?", Validate: NonEmptyText},
			{
				Field: "confirm",
				PromptFunc: func(rec Record) string {
					title, _ := rec["title"].(string)
					return "save " + title + "?"
				},
				Validate: Choice(Option{Label: "да", Value: "yes"}),
			},
		},
		Finalize: func(int64, Record) error { return nil },
	}
	e := NewEngine()
	e.Start(flow, 1)

	res, err := e.Submit(1, Input{Text: "Борщ"})
	require.NoError(t, err)
	assert.Equal(t, "save Борщ?", res.Prompt)
}
