// Package summary folds per-block analysis results into a single document
// summary: total words, estimated reading time, and per-category metrics.
package summary

import (
	"fmt"
	"log/slog"

	"github.com/halostatue/prosody/internal/analyze"
)

// CodeStats holds the code-category accumulators. Words is the load-adjusted
// code word count; Lines counts non-blank code lines.
type CodeStats struct {
	Words int `json:"words" yaml:"words"`
	Lines int `json:"lines" yaml:"lines"`
}

// TextStats holds the prose-category accumulators. Words is the raw
// (uninflated) prose word count.
type TextStats struct {
	Words int `json:"words" yaml:"words"`
}

// Summary is the aggregated outcome for one document.
//
// Code and Text are nil unless at least one block of that category
// contributed non-zero words or lines; absent and zero are distinct.
type Summary struct {
	Words       int            `json:"words" yaml:"words"`
	ReadingTime int            `json:"reading_time" yaml:"reading_time"`
	Code        *CodeStats     `json:"code,omitempty" yaml:"code,omitempty"`
	Text        *TextStats     `json:"text,omitempty" yaml:"text,omitempty"`
	Meta        map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Summarize aggregates analysis results into a Summary.
//
// Code-tagged results contribute their reading words to the grand total and
// the code accumulator, plus their lines; everything else contributes raw
// words to the text accumulator and reading words to the grand total, so
// code's cognitive-load inflation is reflected in the total and reading time
// while prose length stays uninflated.
//
// Reading time is max(minReadingTime, ceil(total/wordsPerMinute)) minutes
// when any reading words accumulated, else exactly minReadingTime.
func Summarize(results []analyze.Result, wordsPerMinute, minReadingTime int) (Summary, error) {
	if wordsPerMinute <= 0 {
		return Summary{}, fmt.Errorf(
			"%w: words per minute must be positive, got %d", analyze.ErrConfig, wordsPerMinute)
	}
	if minReadingTime < 0 {
		return Summary{}, fmt.Errorf(
			"%w: minimum reading time must not be negative, got %d", analyze.ErrConfig, minReadingTime)
	}

	var total, codeWords, codeLines, textWords int
	for _, result := range results {
		if result.IsCode() {
			total += result.ReadingWords
			codeWords += result.ReadingWords
			codeLines += result.Lines
		} else {
			total += result.ReadingWords
			textWords += result.Words
		}
	}

	s := Summary{Words: total, ReadingTime: readingTime(total, wordsPerMinute, minReadingTime)}
	if codeWords > 0 || codeLines > 0 {
		s.Code = &CodeStats{Words: codeWords, Lines: codeLines}
	}
	if textWords > 0 {
		s.Text = &TextStats{Words: textWords}
	}

	slog.Debug("Summary computed", "words", s.Words, "readingTime", s.ReadingTime,
		"codeWords", codeWords, "codeLines", codeLines, "textWords", textWords)
	return s, nil
}

// readingTime converts accumulated reading words to whole minutes, rounding
// up, with a configured floor.
func readingTime(totalWords, wordsPerMinute, minReadingTime int) int {
	if totalWords <= 0 {
		return minReadingTime
	}
	return max(minReadingTime, (totalWords+wordsPerMinute-1)/wordsPerMinute)
}
