package pinyin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeparateMultiLetterInitial(t *testing.T) {
	cases := []struct {
		token   string
		initial string
		final   string
	}{
		{"ZHONG", "ZH", "ONG"},
		{"zhong", "ZH", "ONG"},
		{"CHANG", "CH", "ANG"},
		{"SHUI", "SH", "UI"},
		{"ZAI", "Z", "AI"},
		{"XUE", "X", "UE"},
		{"  xi ", "X", "I"},
	}
	for _, c := range cases {
		got := Separate(c.token)
		assert.Equal(t, c.initial, got.Initial, "token %q", c.token)
		assert.Equal(t, c.final, got.Final, "token %q", c.token)
	}
}

func TestSeparateZeroInitial(t *testing.T) {
	got := Separate("AN")
	assert.Equal(t, "", got.Initial)
	assert.Equal(t, "AN", got.Final)

	got = Separate("er")
	assert.Equal(t, "", got.Initial)
	assert.Equal(t, "ER", got.Final)
}

func TestSeparateDegenerateTokens(t *testing.T) {
	// Structural splitting only: empty or junk input still yields a value.
	assert.Equal(t, Syllable{}, Separate(""))
	assert.Equal(t, Syllable{Initial: "", Final: "123"}, Separate("123"))
}

func TestSeparateCombineRoundTrip(t *testing.T) {
	// Every (initial, final) pair from the enumerated sets survives a
	// combine → separate round trip, including the zero initial.
	initials := append([]string{""}, Initials...)
	for _, ini := range initials {
		for _, fin := range Finals {
			got := Separate(strings.ToUpper(Combine(ini, fin)))
			assert.Equal(t, ini, got.Initial, "combine(%q,%q)", ini, fin)
			assert.Equal(t, fin, got.Final, "combine(%q,%q)", ini, fin)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"xué":   "XUE",
		"lǜ":    "LV",
		"nǚ":    "NV",
		"zhǎng": "ZHANG",
		"hǎo":   "HAO",
		"yīng":  "YING",
		"de":    "DE",
		" pín ": "PIN",
		"a1!":   "A",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestValidToken(t *testing.T) {
	assert.True(t, ValidToken("A"))
	assert.True(t, ValidToken("ZHUANG"))
	assert.False(t, ValidToken(""))
	assert.False(t, ValidToken("ZHUANGA")) // 7 letters
	assert.False(t, ValidToken("xue"))     // lowercase
	assert.False(t, ValidToken("XU E"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "LÜ", New("L", "V").Display())
	assert.Equal(t, "XÜE", New("X", "UE").Display())
	assert.Equal(t, "JÜN", New("J", "UN").Display())
	assert.Equal(t, "QÜAN", New("Q", "UAN").Display())
	assert.Equal(t, "YÜ", New("Y", "U").Display())
	// No promotion outside Y/J/Q/X.
	assert.Equal(t, "LUN", New("L", "UN").Display())
	assert.Equal(t, "SHUI", New("SH", "UI").Display())
}

func TestNewNormalizesCase(t *testing.T) {
	assert.Equal(t, New("zh", "ong"), New("ZH", "ONG"))
}
