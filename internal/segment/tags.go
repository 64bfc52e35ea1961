package segment

import "regexp"

var tagPattern = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// ExtractTags returns the #tags in order of appearance and the text with them removed
func ExtractTags(text string) ([]string, string) {
	tags := tagPattern.FindAllString(text, -1)
	if len(tags) == 0 {
		return nil, text
	}
	return tags, tagPattern.ReplaceAllString(text, "")
}
