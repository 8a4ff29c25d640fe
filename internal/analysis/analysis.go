package analysis

// Result is what could be recognized from a release or file name
type Result struct {
	Titles   []string
	Volume   string
	Chapter  string
	FileName string
}

// AnalyzeReleaseName parses a release display name into candidate series
// titles and volume/chapter markers
func AnalyzeReleaseName(name string) Result {
	return mergeResults([]analyzeResult{analyzeName(parseName(name))})
}

// AnalyzeFile parses a scanned file path. The parent directory usually names
// the series, the file name carries the markers; both contribute candidates.
func AnalyzeFile(path string) Result {
	layout := extractLayout(path)
	if !layout.IsArchiveFile() {
		return Result{FileName: layout.FileName}
	}

	var subResults []analyzeResult
	if layout.SeriesDir != "" {
		subResults = append(subResults, analyzeName(parseName(layout.SeriesDir)))
	}
	if layout.FileName != "" {
		subResults = append(subResults, analyzeName(parseName(layout.FileName)))
	}

	result := mergeResults(subResults)
	result.FileName = layout.FileName
	return result
}

func mergeResults(results []analyzeResult) Result {
	result := Result{}

	// markers from the most specific (innermost) name win
	for i := len(results) - 1; i >= 0; i-- {
		if result.Chapter == "" {
			result.Chapter = results[i].Chapter
		}
		if result.Volume == "" {
			result.Volume = results[i].Volume
		}
	}

	titles := map[string]bool{}
	for i := range results {
		title := results[i].Tokens.String()
		if title != "" && !titles[title] {
			result.Titles = append(result.Titles, title)
			titles[title] = true
		}
	}

	return result
}
