package dictionary

// trie is a prefix tree over lowercase ASCII words. Lookup cost is
// proportional to word length regardless of dictionary size.
type trie struct {
	root trieNode
}

type trieNode struct {
	children [26]*trieNode
	terminal bool
}

// insert assumes w is already lowercase a-z; callers validate.
func (t *trie) insert(w string) {
	node := &t.root
	for _, r := range w {
		i := int(r - 'a')
		if node.children[i] == nil {
			node.children[i] = &trieNode{}
		}
		node = node.children[i]
	}
	node.terminal = true
}

func (t *trie) contains(w string) bool {
	node := &t.root
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
		node = node.children[r-'a']
		if node == nil {
			return false
		}
	}
	return node.terminal
}
