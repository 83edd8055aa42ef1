package topics

import "math"

// UMassCoherence scores each topic's top words by how often they share a
// document, and averages over topics. Higher is more coherent. Topics with
// fewer than two words are ignored.
func UMassCoherence(topics []Topic, docs [][]string) float64 {
	docSets := make([]map[string]struct{}, len(docs))
	for d, doc := range docs {
		set := make(map[string]struct{}, len(doc))
		for _, tok := range doc {
			set[tok] = struct{}{}
		}
		docSets[d] = set
	}

	docFreq := func(words ...string) int {
		n := 0
	next:
		for _, set := range docSets {
			for _, w := range words {
				if _, ok := set[w]; !ok {
					continue next
				}
			}
			n++
		}
		return n
	}

	var total float64
	var scored int
	for _, topic := range topics {
		if len(topic.Words) < 2 {
			continue
		}

		var sum float64
		var pairs int
		for m := 1; m < len(topic.Words); m++ {
			for l := 0; l < m; l++ {
				wm, wl := topic.Words[m].Word, topic.Words[l].Word
				df := docFreq(wl)
				if df == 0 {
					continue
				}
				sum += math.Log(float64(docFreq(wm, wl)+1) / float64(df))
				pairs++
			}
		}
		if pairs > 0 {
			total += sum / float64(pairs)
			scored++
		}
	}

	if scored == 0 {
		return 0
	}
	return total / float64(scored)
}
