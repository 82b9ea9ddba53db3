// Package language guesses a message's language from the Unicode blocks of
// its characters. It needs no model and covers the Indic scripts the widget
// speaks.
package language

// English is returned when no supported script is present.
const English = "en"

type scriptRange struct {
	code       string
	start, end rune
}

// Order matters: ties go to the earlier entry.
var scripts = []scriptRange{
	{code: "hi", start: 0x0900, end: 0x097F}, // Devanagari
	{code: "ml", start: 0x0D00, end: 0x0D7F}, // Malayalam
	{code: "te", start: 0x0C00, end: 0x0C7F}, // Telugu
	{code: "kn", start: 0x0C80, end: 0x0CFF}, // Kannada
	{code: "ta", start: 0x0B80, end: 0x0BFF}, // Tamil
}

// Counts returns how many characters of text fall in each supported script.
func Counts(text string) map[string]int {
	counts := make(map[string]int, len(scripts))
	for _, s := range scripts {
		counts[s.code] = 0
	}
	for _, r := range text {
		for _, s := range scripts {
			if r >= s.start && r <= s.end {
				counts[s.code]++
				break
			}
		}
	}
	return counts
}

// Detect returns the code of the script with the most characters in text, or
// English when none are present.
func Detect(text string) string {
	if text == "" {
		return English
	}

	counts := Counts(text)
	best, bestCount := English, 0
	for _, s := range scripts {
		if counts[s.code] > bestCount {
			best, bestCount = s.code, counts[s.code]
		}
	}
	return best
}
