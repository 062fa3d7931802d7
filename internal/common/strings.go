package common

import "strings"

func StringsIndexOf(hay []string, needle string) int {
	needle = strings.ToLower(needle)
	for i, s := range hay {
		if strings.ToLower(s) == needle {
			return i
		}
	}
	return -1
}

func IsInList(hay []string, needle string) bool {
	return StringsIndexOf(hay, needle) >= 0
}

// StringsRemove removes an item out of a slice while keeping the order of the
// remaining items. This *will* modify the original slice, YMMV.
func StringsRemove(hay []string, needle string) []string {
	if idx := StringsIndexOf(hay, needle); idx > -1 {
		hay = append(hay[:idx], hay[idx+1:]...)
	}
	return hay
}

func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
