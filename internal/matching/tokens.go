package matching

import "strings"

// tokenCutset is trimmed from both ends of every whitespace-separated piece.
const tokenCutset = ",.;:()[]{}\n\t"

// Bag is a multiset of lowercase word tokens.
type Bag map[string]int

// Tokenize lowercases each fragment, treats "/" as a separator, strips edge punctuation
// and counts the remaining tokens. There is no stemming and no stopword removal.
func Tokenize(fragments ...string) Bag {
	bag := make(Bag)
	for _, fragment := range fragments {
		fragment = strings.ReplaceAll(strings.ToLower(fragment), "/", " ")
		for _, piece := range strings.Fields(fragment) {
			token := strings.TrimSpace(strings.Trim(piece, tokenCutset))
			if token == "" {
				continue
			}
			bag[token]++
		}
	}
	return bag
}

func (b Bag) Contains(token string) bool {
	return b[token] > 0
}

// IntersectionSize returns the multiset intersection cardinality: the sum over shared
// tokens of the smaller count.
func (b Bag) IntersectionSize(other Bag) int {
	small, large := b, other
	if len(large) < len(small) {
		small, large = large, small
	}

	total := 0
	for token, count := range small {
		if n, ok := large[token]; ok {
			total += min(count, n)
		}
	}
	return total
}
