package textclean

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed stopwords/*.txt
var stopwordFiles embed.FS

// loadStopwords reads stopwords/<language>.txt. ok is false when no list
// ships for that language.
func loadStopwords(language string) (map[string]struct{}, bool) {
	data, err := stopwordFiles.ReadFile("stopwords/" + language + ".txt")
	if err != nil {
		return nil, false
	}

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words[word] = struct{}{}
		}
	}
	return words, true
}
