package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_KeepsAllowedScripts(t *testing.T) {
	assert.Equal(t, "protein bar 100", CleanText("protein bar 100", MaxSearchLen))
	assert.Equal(t, "протеин", CleanText("протеин!!", MaxSearchLen))
	assert.Equal(t, "սպիտակուց", CleanText("սպիտակուց™", MaxSearchLen))
	assert.Equal(t, "whey-pro", CleanText("whey-pro", MaxSearchLen))
}

func TestCleanText_DropsDisallowed(t *testing.T) {
	assert.Equal(t, "drop table--", CleanText("drop; table--%", MaxSearchLen))
	//記号だけが落ち、中の文字は残る
	assert.Equal(t, "ascriptscript b", CleanText("a<script>'\"</script> b", MaxSearchLen))
}

func TestCleanText_OnlyDisallowedBecomesEmpty(t *testing.T) {
	//全部落ちたら空文字（呼び出し側がフィルタを省略する）
	assert.Equal(t, "", CleanText("%';!?@#$", MaxSearchLen))
	assert.Equal(t, "", CleanText("   ", MaxSearchLen))
	assert.Equal(t, "", CleanText("", MaxSearchLen))
}

func TestCleanText_Truncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	assert.Equal(t, 100, len(CleanText(long, MaxSearchLen)))

	//max<=0はデフォルト200
	assert.Equal(t, 200, len(CleanText(long, 0)))
}

func TestCleanText_CollapsesSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a   b\t\tc  ", MaxSearchLen))
}

func TestSlug_Lowercases(t *testing.T) {
	assert.Equal(t, "protein-bar", Slug("Protein-Bar"))
	assert.Equal(t, 50, len(Slug(strings.Repeat("X", 80))))
}

func TestUUID_Valid(t *testing.T) {
	id := "A1B2C3D4-e5f6-7890-abcd-ef0123456789"
	assert.Equal(t, "a1b2c3d4-e5f6-7890-abcd-ef0123456789", UUID(id))
	assert.Equal(t, "a1b2c3d4-e5f6-7890-abcd-ef0123456789", UUID(" a1b2c3d4-e5f6-7890-abcd-ef0123456789 "))
}

func TestUUID_Invalid(t *testing.T) {
	assert.Equal(t, "", UUID("not-a-uuid"))
	assert.Equal(t, "", UUID("a1b2c3d4e5f67890abcdef0123456789"))
	assert.Equal(t, "", UUID("a1b2c3d4-e5f6-7890-abcd-ef012345678"))
	assert.Equal(t, "", UUID("{a1b2c3d4-e5f6-7890-abcd-ef0123456789}"))
	assert.Equal(t, "", UUID(""))
}
