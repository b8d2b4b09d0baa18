package token

// The stopword set covers English function words plus store-listing filler:
// generic superlatives and platform names add no discovery value no matter
// how often they rank in keyword fields.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range [...]string{
		// function words
		"a", "an", "the", "and", "or", "but", "nor", "so", "yet",
		"of", "in", "on", "at", "to", "from", "by", "with", "without",
		"about", "as", "into", "onto", "over", "under", "between",
		"up", "down", "out", "off", "than", "too", "very", "just",
		"is", "are", "was", "were", "be", "been", "being", "am",
		"do", "does", "did", "done", "have", "has", "had",
		"will", "would", "can", "could", "should", "shall", "may", "might", "must",
		"it", "its", "this", "that", "these", "those",
		"i", "me", "my", "mine", "we", "us", "our", "ours",
		"you", "your", "yours", "they", "them", "their", "theirs",
		"he", "him", "his", "she", "her", "hers",
		"not", "no", "all", "any", "some", "each", "every", "both", "few",
		"more", "most", "other", "another", "such", "only", "own", "same",
		"also", "then", "once", "here", "there", "now",
		"when", "where", "why", "how", "what", "which", "who", "whom",
		"if", "because", "while", "during", "before", "after",
		"get", "got",
		// generic superlatives and hype
		"best", "top", "great", "greatest", "good", "better",
		"amazing", "awesome", "incredible", "ultimate", "perfect",
		"new", "latest", "number",
		// platform names
		"app", "apps", "application", "applications",
		"mobile", "phone", "smartphone", "tablet",
		"iphone", "ipad", "ios", "android", "device",
	} {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether a normalized token is in the stopword set.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// StopwordCount returns the size of the static stopword set.
func StopwordCount() int {
	return len(stopwords)
}
