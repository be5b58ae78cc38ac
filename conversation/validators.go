package conversation

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Validators below are the building blocks of the flow definitions. They
// are pure: raw input in, typed value or failure out.

// NonEmptyText trims and requires at least one character.
func NonEmptyText(in Input) (interface{}, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, errors.New("значение не может быть пустым, попробуйте ещё раз")
	}
	return text, nil
}

// OptionalText treats "-" as the empty value so users can blank a field.
func OptionalText(in Input) (interface{}, error) {
	text := strings.TrimSpace(in.Text)
	if text == "-" {
		text = ""
	}
	return text, nil
}

// Decimal accepts a comma or a dot as the separator and rejects negatives.
func Decimal(in Input) (interface{}, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(in.Text, ",", "."))
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("введите цену числом, например: 249.00")
	}
	if value < 0 {
		return nil, errors.New("цена не может быть отрицательной")
	}
	return value, nil
}

// NumericID parses a Telegram user ID.
func NumericID(in Input) (interface{}, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(in.Text), 10, 64)
	if err != nil {
		return nil, errors.New("введите ID числом, например: 123456789")
	}
	return id, nil
}

// DateTimeText accepts the three layouts the booking store understands and
// keeps the raw text: the year, when absent, is substituted at evaluation
// time, not here.
func DateTimeText(layouts []string) func(Input) (interface{}, error) {
	return func(in Input) (interface{}, error) {
		text := strings.TrimSpace(in.Text)
		for _, layout := range layouts {
			if _, err := time.Parse(layout, text); err == nil {
				return text, nil
			}
		}
		return nil, errors.New("не удалось понять дату, пример: 28.08 15:30")
	}
}

// Choice requires one of the step's options; the selected value passes
// through unchanged. Typed text matching an option value is accepted too.
func Choice(options ...Option) func(Input) (interface{}, error) {
	return func(in Input) (interface{}, error) {
		answer := in.Choice
		if answer == "" {
			answer = strings.TrimSpace(in.Text)
		}
		for _, opt := range options {
			if answer == opt.Value {
				return opt.Value, nil
			}
		}
		return nil, errors.New("выберите один из вариантов")
	}
}

// ChoiceOrText prefers a pressed option but falls back to free text, for
// steps like menu category where custom values are allowed.
func ChoiceOrText(in Input) (interface{}, error) {
	if in.Choice != "" {
		return in.Choice, nil
	}
	return NonEmptyText(in)
}

// MediaOrText stores an attachment as a tagged file reference, a URL as-is,
// and "-" as empty.
func MediaOrText(fileIDPrefix string) func(Input) (interface{}, error) {
	return func(in Input) (interface{}, error) {
		if in.FileID != "" {
			return fileIDPrefix + in.FileID, nil
		}
		return OptionalText(in)
	}
}

// ActiveFlag maps loose yes/no spellings to a bool. Anything not an
// explicit "no" counts as yes.
func ActiveFlag(in Input) (interface{}, error) {
	switch strings.ToLower(strings.TrimSpace(in.Text)) {
	case "0", "no", "нет", "-", "false":
		return false, nil
	default:
		return true, nil
	}
}
