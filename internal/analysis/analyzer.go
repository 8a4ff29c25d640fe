package analysis

import (
	"regexp"
	"strings"
)

type analyzeResult struct {
	Tokens  tokenList
	Volume  string
	Chapter string
}

type analyzeContext struct {
	result analyzeResult
	remove []bool
	name   tokenList
}

var (
	compactVolumeExp  = regexp.MustCompile(`^v(?:ol(?:ume)?)?(\d+)$`)
	compactChapterExp = regexp.MustCompile(`^c(?:h(?:apter)?)?(\d+(?:\.\d+)?)$`)
	numberExp         = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

func analyzeName(name tokenList) analyzeResult {
	ctx := analyzeContext{
		name:   name,
		remove: make([]bool, len(name)),
	}

	// 1) marker keyword followed by a number: "vol 3", "chapter 12.5"
	determineSplitMarker(&ctx, []string{"vol", "volume", "v"}, &ctx.result.Volume)
	determineSplitMarker(&ctx, []string{"ch", "chapter", "chap", "c"}, &ctx.result.Chapter)

	// 2) compact forms: v03, ch12.5, c012
	determineCompactMarker(&ctx, compactVolumeExp, &ctx.result.Volume)
	determineCompactMarker(&ctx, compactChapterExp, &ctx.result.Chapter)

	// 3) a trailing bare number with no marker keyword is the chapter
	determineTrailingChapter(&ctx)

	removeExtraWords(&ctx)

	titleLength := guessTitleLength(ctx.name, ctx.remove)
	ctx.result.Tokens = crop(ctx.name, ctx.remove, titleLength)

	return ctx.result
}

func determineSplitMarker(ctx *analyzeContext, words []string, out *string) {
	if *out != "" {
		return
	}
	matches := make([]match, 0, len(words))
	for _, w := range words {
		matches = append(matches, wordMatch{Word: w})
	}
	pos := ctx.name.Find(orMatch{Matches: matches})
	if pos < 0 || pos >= len(ctx.name)-1 {
		return
	}
	next := ctx.name[pos+1]
	if !numberExp.MatchString(next.Text) {
		return
	}
	*out = normalizeMarker(next.Text)
	ctx.remove[pos] = true
	ctx.remove[pos+1] = true
}

func determineCompactMarker(ctx *analyzeContext, exp *regexp.Regexp, out *string) {
	if *out != "" {
		return
	}
	pos := ctx.name.Find(regexMatch{Exp: exp})
	if pos < 0 {
		return
	}
	groups := exp.FindStringSubmatch(ctx.name[pos].Text)
	if len(groups) < 2 {
		return
	}
	*out = normalizeMarker(groups[1])
	ctx.remove[pos] = true
}

func determineTrailingChapter(ctx *analyzeContext) {
	if ctx.result.Chapter != "" {
		return
	}
	for i := len(ctx.name) - 1; i >= 0; i-- {
		if ctx.remove[i] || ctx.name[i].InBraces {
			continue
		}
		if !numberExp.MatchString(ctx.name[i].Text) {
			return
		}
		// a lone number is the whole title, not a chapter
		if i == 0 {
			return
		}
		ctx.result.Chapter = normalizeMarker(ctx.name[i].Text)
		ctx.remove[i] = true
		return
	}
}

func removeExtraWords(ctx *analyzeContext) {
	matched := ctx.name.FindAll(
		orMatch{
			Matches: []match{
				bracesMatch{},
				wordMatch{Word: "eng"},
				wordMatch{Word: "raw"},
				wordMatch{Word: "digital"},
				wordMatch{Word: "official"},
				wordMatch{Word: "scanlation"},
				wordMatch{Word: "oneshot"},
				wordMatch{Word: "extra"},
				wordMatch{Word: "omake"},
			},
		},
	)

	for _, r := range matched {
		ctx.remove[r] = true
	}
}

func guessTitleLength(name tokenList, remove []bool) int {
	for i, r := range remove {
		if r && i != 0 {
			if i == 1 && name[i-1].IsDigital() {
				continue
			}
			return i
		}
	}

	return len(remove)
}

func crop(name tokenList, remove []bool, maxLength int) tokenList {
	result := make(tokenList, 0, maxLength)
	for i, t := range name {
		if !remove[i] {
			result = append(result, t)
		}
		if len(result) >= maxLength {
			return result
		}
	}

	return result
}

// normalizeMarker strips leading zeroes so "012" and "12" compare equal
func normalizeMarker(marker string) string {
	trimmed := strings.TrimLeft(marker, "0")
	if trimmed == "" || strings.HasPrefix(trimmed, ".") {
		trimmed = "0" + trimmed
	}
	return trimmed
}
