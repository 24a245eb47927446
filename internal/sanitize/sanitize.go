package sanitize

import (
	"regexp"
	"strings"
)

// フィールドごとの最大長
const (
	MaxSearchLen  = 100
	MaxSlugLen    = 50
	MaxDefaultLen = 200
)

var (
	//許可リスト：ラテン・キリル・アルメニア文字、数字、空白、ハイフン以外を落とす
	disallowedChars = regexp.MustCompile(`[^0-9\p{Latin}\p{Cyrillic}\p{Armenian}\s-]+`)

	repeatedSpaces = regexp.MustCompile(`\s+`)

	//正規の 8-4-4-4-12 形式
	uuidShape = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// CleanText は許可リスト外の文字を除去し、trimしてmax文字に切り詰める。
// 失敗しない。全部落ちたら空文字を返し、呼び出し側はフィルタ省略として扱う。
func CleanText(s string, max int) string {
	if max <= 0 {
		max = MaxDefaultLen
	}

	s = disallowedChars.ReplaceAllString(s, "")
	s = repeatedSpaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	r := []rune(s)
	if len(r) > max {
		s = strings.TrimSpace(string(r[:max]))
	}
	return s
}

// Search は検索語用（最大100文字）。
func Search(s string) string {
	return CleanText(s, MaxSearchLen)
}

// Slug はスラッグ用（最大50文字、小文字化）。
func Slug(s string) string {
	return strings.ToLower(CleanText(s, MaxSlugLen))
}

// UUID は正規形にマッチすれば小文字で返し、しなければ空文字を返す。
// 不正なIDはエラーではなく「フィルタ適用外」として落とす。
func UUID(s string) string {
	s = strings.TrimSpace(s)
	if !uuidShape.MatchString(s) {
		return ""
	}
	return strings.ToLower(s)
}
