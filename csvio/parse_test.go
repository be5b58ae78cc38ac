package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestParseClassifiesBookings(t *testing.T) {
	raw := []byte("id;user_id;fullname;phone;datetime;source;notes;status;consent\n" +
		"1;42;Анна;+7900;28.08 15:30;Instagram;;pending;Да\n")

	table, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindBookings, table.Kind)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Анна", table.Rows[0]["fullname"])
	assert.Equal(t, "28.08 15:30", table.Rows[0]["datetime"])
}

func TestParseCommaDelimiter(t *testing.T) {
	raw := []byte("user_id,role,fullname,phone,username,passport\n" +
		"123,staff,Иван Петров,+7901,ivan,0123 456789\n")

	table, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindStaff, table.Kind)
	assert.Equal(t, "Иван Петров", table.Rows[0]["fullname"])
}

func TestParseStripsBOMAndCaseFoldsHeader(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF},
		[]byte("ID;Title;Description;Price;Category;Photo_URL;Is_Active\n1;Борщ;;290;Еда;;1\n")...)

	table, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, KindMenu, table.Kind)
	assert.Equal(t, "Борщ", table.Rows[0]["title"])
}

func TestParseWindows1251Fallback(t *testing.T) {
	text := "id;title;description;price;category;photo_url;is_active\n1;Окрошка;летняя;250;Еда;;1\n"
	raw, err := charmap.Windows1251.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	table, perr := Parse(raw)
	require.NoError(t, perr)
	assert.Equal(t, "Окрошка", table.Rows[0]["title"])
	assert.Equal(t, "летняя", table.Rows[0]["description"])
}

func TestParseUnknownHeaderFailsBatch(t *testing.T) {
	_, err := Parse([]byte("foo;bar;baz\n1;2;3\n"))
	assert.ErrorIs(t, err, ErrUnknownSchema)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestParseShortRowPadsMissingColumns(t *testing.T) {
	raw := []byte("user_id;role;fullname;phone;username;passport\n123;staff;Иван\n")

	table, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "", table.Rows[0]["passport"])
}

func TestDetectDelimiterSemicolonWinsTies(t *testing.T) {
	assert.Equal(t, ';', detectDelimiter("a;b,c;d,e"))
	assert.Equal(t, ',', detectDelimiter("a,b,c"))
	assert.Equal(t, ';', detectDelimiter("a"))
}
