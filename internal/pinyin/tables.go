// internal/pinyin/tables.go
//
// Enumerated initial and final sets for romanized Mandarin.

package pinyin

// Initials lists every valid initial, ordered longest-first so prefix
// scanning in Separate always claims ZH/CH/SH before Z/C/S.
var Initials = []string{
	"ZH", "CH", "SH",
	"B", "P", "M", "F",
	"D", "T", "N", "L",
	"G", "K", "H",
	"J", "Q", "X",
	"R", "Z", "C", "S",
	"Y", "W",
}

// Finals lists every valid final. The ü vowel appears as "V" (normalized
// form); display code substitutes Ü. Every final starts with a vowel, which
// is what keeps Separate's prefix scan unambiguous.
var Finals = []string{
	"A", "O", "E", "I", "U", "V",
	"AI", "EI", "UI", "AO", "OU", "IU",
	"IE", "UE", "VE", "ER",
	"AN", "EN", "IN", "UN", "VN",
	"ANG", "ENG", "ING", "ONG",
	"IA", "IAO", "IAN", "IANG", "IONG",
	"UA", "UO", "UAI", "UAN", "UANG",
}
