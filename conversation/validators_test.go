package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonEmptyText(t *testing.T) {
	v, err := NonEmptyText(Input{Text: "  Анна  "})
	require.NoError(t, err)
	assert.Equal(t, "Анна", v)

	_, err = NonEmptyText(Input{Text: "   "})
	assert.Error(t, err)
}

func TestOptionalTextDashClears(t *testing.T) {
	v, err := OptionalText(Input{Text: "-"})
	require.NoError(t, err)
	assert.Equal(t, "", v)

	v, err = OptionalText(Input{Text: " Instagram "})
	require.NoError(t, err)
	assert.Equal(t, "Instagram", v)
}

func TestDecimal(t *testing.T) {
	v, err := Decimal(Input{Text: "249,90"})
	require.NoError(t, err)
	assert.Equal(t, 249.90, v)

	v, err = Decimal(Input{Text: "100"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	_, err = Decimal(Input{Text: "-5"})
	assert.Error(t, err)

	_, err = Decimal(Input{Text: "дорого"})
	assert.Error(t, err)
}

func TestNumericID(t *testing.T) {
	v, err := NumericID(Input{Text: " 123456789 "})
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), v)

	_, err = NumericID(Input{Text: "@username"})
	assert.Error(t, err)
}

func TestDateTimeTextKeepsRawText(t *testing.T) {
	validate := DateTimeText([]string{"02.01 15:04", "2006-01-02 15:04"})

	v, err := validate(Input{Text: "28.08 15:30"})
	require.NoError(t, err)
	assert.Equal(t, "28.08 15:30", v, "the raw spelling is stored, not a parsed time")

	v, err = validate(Input{Text: "2026-01-03 19:00"})
	require.NoError(t, err)
	assert.Equal(t, "2026-01-03 19:00", v)

	_, err = validate(Input{Text: "завтра вечером"})
	assert.Error(t, err)
}

func TestChoice(t *testing.T) {
	validate := Choice(Option{Label: "✅ Да", Value: "Да"}, Option{Label: "❌ Нет", Value: "Нет"})

	v, err := validate(Input{Choice: "Да"})
	require.NoError(t, err)
	assert.Equal(t, "Да", v)

	// Typed text matching an option value works too.
	v, err = validate(Input{Text: "Нет"})
	require.NoError(t, err)
	assert.Equal(t, "Нет", v)

	_, err = validate(Input{Text: "возможно"})
	assert.Error(t, err)
}

func TestChoiceOrText(t *testing.T) {
	v, err := ChoiceOrText(Input{Choice: "Еда"})
	require.NoError(t, err)
	assert.Equal(t, "Еда", v)

	v, err = ChoiceOrText(Input{Text: "Сезонное"})
	require.NoError(t, err)
	assert.Equal(t, "Сезонное", v)

	_, err = ChoiceOrText(Input{Text: ""})
	assert.Error(t, err)
}

func TestMediaOrText(t *testing.T) {
	validate := MediaOrText("file_id:")

	v, err := validate(Input{FileID: "AgACAg"})
	require.NoError(t, err)
	assert.Equal(t, "file_id:AgACAg", v)

	v, err = validate(Input{Text: "https://example.com/dish.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/dish.jpg", v)

	v, err = validate(Input{Text: "-"})
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestActiveFlag(t *testing.T) {
	for _, raw := range []string{"нет", "no", "0", "-", "false", "НЕТ"} {
		v, err := ActiveFlag(Input{Text: raw})
		require.NoError(t, err)
		assert.Equal(t, false, v, raw)
	}
	v, err := ActiveFlag(Input{Text: "да"})
	require.NoError(t, err)
	assert.Equal(t, true, v)
}
