// Package wordsource implements the word-list half of the orchestrator's
// suppliers (§6): a bundled English dictionary, or one or more CSV files
// with an "answer" column, feeding raw strings into wordindex.Build.
//
// Grounded on the teacher's loadFromFile (cmd/xwcli/main.go, now folded
// into this package's FileWords), generalized from "bufio.Scanner over a
// bare word list" to "encoding/csv over an answer column," and on the
// go:embed dictionary pattern used by other_examples/jrhy-sandbox__wordle.go
// and other_examples/xorkevin-wordlebot__main.go for bundling a static word
// corpus into the binary.
package wordsource

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"crosswarped.com/xwfill/internal/xwerr"
)

//go:embed dictionary.txt
var embedded embed.FS

// Source is the closed set of word-list suppliers (§9): a bundled
// dictionary, or a set of CSV files/globs with an "answer" column.
type Source interface {
	Load() ([]string, error)
}

// DictionaryWords reads the bundled English dictionary.
type DictionaryWords struct{}

func (DictionaryWords) Load() ([]string, error) {
	data, err := embedded.ReadFile("dictionary.txt")
	if err != nil {
		return nil, fmt.Errorf("%w: reading bundled dictionary: %v", xwerr.ErrInvalidWordList, err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}

// FileWords reads one or more CSV files (Paths may be globs), each with an
// "answer" column. Load returns every answer it reads, without deduplicating
// or capping; MaxWords is not read by Load. Deduplication and the
// max_num_words cap are applied by wordindex.Build.
type FileWords struct {
	Paths    []string
	MaxWords int
}

func (f FileWords) Load() ([]string, error) {
	var files []string
	for _, p := range f.Paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad glob %q: %v", xwerr.ErrInvalidWordList, p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no files match %q", xwerr.ErrInvalidWordList, p)
		}
		files = append(files, matches...)
	}

	var words []string
	for _, path := range files {
		got, err := readAnswerColumn(path)
		if err != nil {
			return nil, err
		}
		words = append(words, got...)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: effective word catalogue is empty", xwerr.ErrInvalidWordList)
	}
	return words, nil
}

func readAnswerColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", xwerr.ErrInvalidWordList, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", xwerr.ErrInvalidWordList, path, err)
	}
	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "answer") {
			col = i
			break
		}
	}
	if col == -1 {
		return nil, fmt.Errorf("%w: %s has no \"answer\" column", xwerr.ErrInvalidWordList, path)
	}

	var words []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", xwerr.ErrInvalidWordList, path, err)
		}
		if col >= len(record) {
			continue
		}
		words = append(words, record[col])
	}
	return words, nil
}
