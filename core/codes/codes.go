// Package codes holds the static enumerations of valid language codes, file
// formats, and text encodings. The tables are read-only constant data: the
// rest of the system only ever asks for membership or for the full sorted
// list, so extending a table never requires logic changes elsewhere.
package codes

import "sort"

// languageCodes is the set of recognized ISO 639-1 language codes.
var languageCodes = map[string]bool{
	"aa": true, "ab": true, "af": true, "am": true, "ar": true, "as": true,
	"ay": true, "az": true, "ba": true, "be": true, "bg": true, "bh": true,
	"bi": true, "bn": true, "bo": true, "br": true, "bs": true, "ca": true,
	"co": true, "cs": true, "cy": true, "da": true, "de": true, "dz": true,
	"el": true, "en": true, "eo": true, "es": true, "et": true, "eu": true,
	"fa": true, "fi": true, "fj": true, "fo": true, "fr": true, "fy": true,
	"ga": true, "gd": true, "gl": true, "gn": true, "gu": true, "ha": true,
	"he": true, "hi": true, "hr": true, "hu": true, "hy": true, "ia": true,
	"id": true, "ie": true, "ik": true, "is": true, "it": true, "iu": true,
	"ja": true, "jv": true, "ka": true, "kk": true, "kl": true, "km": true,
	"kn": true, "ko": true, "ks": true, "ku": true, "ky": true, "la": true,
	"lb": true, "ln": true, "lo": true, "lt": true, "lv": true, "mg": true,
	"mi": true, "mk": true, "ml": true, "mn": true, "mr": true, "ms": true,
	"mt": true, "my": true, "na": true, "ne": true, "nl": true, "no": true,
	"oc": true, "om": true, "or": true, "pa": true, "pl": true, "ps": true,
	"pt": true, "qu": true, "rm": true, "rn": true, "ro": true, "ru": true,
	"rw": true, "sa": true, "sd": true, "sg": true, "si": true, "sk": true,
	"sl": true, "sm": true, "sn": true, "so": true, "sq": true, "sr": true,
	"ss": true, "st": true, "su": true, "sv": true, "sw": true, "ta": true,
	"te": true, "tg": true, "th": true, "ti": true, "tk": true, "tl": true,
	"tn": true, "to": true, "tr": true, "ts": true, "tt": true, "tw": true,
	"ug": true, "uk": true, "ur": true, "uz": true, "vi": true, "vo": true,
	"wo": true, "xh": true, "yi": true, "yo": true, "za": true, "zh": true,
	"zu": true,
}

// formatCodes is the set of recognized corpus content formats.
var formatCodes = map[string]bool{
	"txt":    true,
	"tok":    true,
	"xml":    true,
	"tmx":    true,
	"tei":    true,
	"conllu": true,
	"vert":   true,
	"json":   true,
	"csv":    true,
	"tsv":    true,
	"html":   true,
}

// encodingCodes is the set of recognized text encodings.
var encodingCodes = map[string]bool{
	"utf-8":       true,
	"utf-16":      true,
	"utf-16le":    true,
	"utf-16be":    true,
	"ascii":       true,
	"iso-8859-1":  true,
	"iso-8859-2":  true,
	"iso-8859-15": true,
	"cp1250":      true,
	"cp1251":      true,
	"cp1252":      true,
	"koi8-r":      true,
	"euc-jp":      true,
	"shift_jis":   true,
	"gb2312":      true,
	"big5":        true,
}

// IsLanguage reports whether code is a recognized language code.
func IsLanguage(code string) bool {
	return languageCodes[code]
}

// IsFormat reports whether code is a recognized content format.
func IsFormat(code string) bool {
	return formatCodes[code]
}

// IsEncoding reports whether code is a recognized text encoding.
func IsEncoding(code string) bool {
	return encodingCodes[code]
}

// Languages returns all recognized language codes in sorted order.
func Languages() []string {
	return sortedKeys(languageCodes)
}

// Formats returns all recognized format codes in sorted order.
func Formats() []string {
	return sortedKeys(formatCodes)
}

// Encodings returns all recognized encoding codes in sorted order.
func Encodings() []string {
	return sortedKeys(encodingCodes)
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
