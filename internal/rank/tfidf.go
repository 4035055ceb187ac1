package rank

import "math"

// TermFrequency computes a max-normalized term frequency vector: raw count
// divided by the highest raw count in the document, so the most frequent
// token always weighs 1.0. An empty token sequence yields an empty vector.
func TermFrequency(tokens []string) map[string]float64 {
	counts := make(map[string]int, len(tokens))
	maxCount := 1
	for _, tok := range tokens {
		counts[tok]++
		if counts[tok] > maxCount {
			maxCount = counts[tok]
		}
	}

	tf := make(map[string]float64, len(counts))
	for tok, c := range counts {
		tf[tok] = float64(c) / float64(maxCount)
	}
	return tf
}

// DocumentFrequency counts, for each token, how many documents contain it
// at least once.
func DocumentFrequency(docs [][]string) map[string]int {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, tok := range doc {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}
	return df
}

// TFIDF weighs a document's terms against the corpus:
//
//	tfidf = tf * (ln((N+1)/(df+1)) + 1)
//
// The +1 smoothing keeps idf strictly positive and tolerates tokens missing
// from the table. The df table must have been built over the same corpus
// totalDocs counts; that consistency is the caller's obligation.
func TFIDF(tokens []string, df map[string]int, totalDocs int) map[string]float64 {
	tf := TermFrequency(tokens)

	vec := make(map[string]float64, len(tf))
	for tok, f := range tf {
		idf := math.Log(float64(totalDocs+1)/float64(df[tok]+1)) + 1
		vec[tok] = f * idf
	}
	return vec
}
