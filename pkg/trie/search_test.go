package trie

import (
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestSearch(t *testing.T) {
	trie := Build([]string{"cat", "car", "cart", "dog"})

	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "shared prefix", prefix: "ca", want: []string{"car", "cart", "cat"}},
		{name: "single match", prefix: "do", want: []string{"dog"}},
		{name: "prefix is a word", prefix: "car", want: []string{"car", "cart"}},
		{name: "exact leaf", prefix: "cart", want: []string{"cart"}},
		{name: "absent prefix", prefix: "x", want: []string{}},
		{name: "longer than any word", prefix: "carts", want: []string{}},
		{name: "empty prefix", prefix: "", want: []string{"car", "cart", "cat", "dog"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(trie, tt.prefix)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestSearchN(t *testing.T) {
	trie := Build([]string{"cat", "car", "cart", "dog"})

	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []string
	}{
		{name: "limit one", prefix: "ca", limit: 1, want: []string{"car"}},
		{name: "limit two", prefix: "ca", limit: 2, want: []string{"car", "cart"}},
		{name: "limit equals total", prefix: "ca", limit: 3, want: []string{"car", "cart", "cat"}},
		{name: "limit exceeds total", prefix: "ca", limit: 10, want: []string{"car", "cart", "cat"}},
		{name: "zero limit", prefix: "ca", limit: 0, want: []string{}},
		{name: "absent prefix", prefix: "x", limit: 5, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SearchN(trie, tt.prefix, tt.limit)
			if err != nil {
				t.Fatalf("SearchN() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchN(%q, %d) = %q, want %q", tt.prefix, tt.limit, got, tt.want)
			}
		})
	}
}

func TestSearchN_NegativeLimit(t *testing.T) {
	trie := Build([]string{"cat"})

	if _, err := SearchN(trie, "c", -1); !errors.Is(err, ErrNegativeLimit) {
		t.Errorf("SearchN(-1) error = %v, want %v", err, ErrNegativeLimit)
	}
}

func TestSearch_EmptyTrie(t *testing.T) {
	trie := Build(nil)

	for _, prefix := range []string{"", "a", "xyz"} {
		if got := Search(trie, prefix); len(got) != 0 {
			t.Errorf("Search(%q) on empty trie = %q, want empty", prefix, got)
		}
	}
}

func TestSearch_EmptyWordFirst(t *testing.T) {
	trie := Build([]string{"b", "", "a"})

	want := []string{"", "a", "b"}
	if got := Search(trie, ""); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(\"\") = %q, want %q", got, want)
	}
}

func TestSearch_Unicode(t *testing.T) {
	trie := Build([]string{"中国", "中国人", "中文", "中"})

	want := []string{"中", "中国", "中国人", "中文"}
	if got := Search(trie, "中"); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(中) = %q, want %q", got, want)
	}
}

func TestSearch_InvalidUTF8KeptVerbatim(t *testing.T) {
	trie := Build([]string{"\xff", "\xfe", "\uFFFD", "a\xffb", "a\uFFFDb"})

	if trie.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", trie.Len())
	}

	// 非法字节排在所有码点之前, 字节值大的在前
	want := []string{"\xff", "\xfe", "a\xffb", "a\uFFFDb", "\uFFFD"}
	if got := Search(trie, ""); !reflect.DeepEqual(got, want) {
		t.Errorf("Search(\"\") = %q, want %q", got, want)
	}

	tests := []struct {
		prefix string
		want   []string
	}{
		{"\xff", []string{"\xff"}},
		{"\uFFFD", []string{"\uFFFD"}},
		{"a\xff", []string{"a\xffb"}},
		{"\xfd", []string{}},
	}
	for _, tt := range tests {
		if got := Search(trie, tt.prefix); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Search(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}

	if trie.Contains("\xfd") {
		t.Error("Contains(\"\\xfd\") = true for a word never inserted")
	}
	for _, w := range []string{"\xff", "\xfe", "\uFFFD"} {
		if !trie.Contains(w) {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}
}

func TestSearch_DeepWord(t *testing.T) {
	long := strings.Repeat("a", 100000)
	trie := Build([]string{long, "a"})

	got := Search(trie, "a")
	if len(got) != 2 || got[0] != "a" || got[1] != long {
		t.Errorf("Search over a very deep path returned %d results", len(got))
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	trie := Build([]string{"a", "ab", "abc", "b", "bc"})

	var visited []string
	Walk(trie, "", func(word string) bool {
		visited = append(visited, word)
		return word != "ab"
	})

	want := []string{"a", "ab"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("Walk visited %q, want %q", visited, want)
	}
}

// randomWords 生成小字母表上的随机词, 以产生大量共享前缀
func randomWords(rng *rand.Rand, n int) []string {
	const alphabet = "abcé"
	letters := []rune(alphabet)
	words := make([]string, n)
	for i := range words {
		length := rng.Intn(6)
		var b strings.Builder
		for j := 0; j < length; j++ {
			b.WriteRune(letters[rng.Intn(len(letters))])
		}
		words[i] = b.String()
	}
	return words
}

// bruteForce 直接过滤词列表, 去重并按码点排序
func bruteForce(words []string, prefix string) []string {
	seen := make(map[string]bool)
	matches := make([]string, 0)
	for _, w := range words {
		if strings.HasPrefix(w, prefix) && !seen[w] {
			seen[w] = true
			matches = append(matches, w)
		}
	}
	// 对合法 UTF-8, 字节序与码点序一致, 先序遍历结果即为字典序
	slices.Sort(matches)
	return matches
}

func TestSearch_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		words := randomWords(rng, 40)
		trie := Build(words)

		prefixes := append(randomWords(rng, 10), "")
		for _, prefix := range prefixes {
			want := bruteForce(words, prefix)
			got := Search(trie, prefix)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round %d: Search(%q) = %q, want %q", round, prefix, got, want)
			}

			for _, r := range got {
				if !strings.HasPrefix(r, prefix) || !slices.Contains(words, r) {
					t.Fatalf("round %d: result %q is not a stored word with prefix %q", round, r, prefix)
				}
			}

			for limit := 0; limit <= len(got)+1; limit++ {
				limited, err := SearchN(trie, prefix, limit)
				if err != nil {
					t.Fatalf("SearchN() error = %v", err)
				}
				if n := min(limit, len(got)); !reflect.DeepEqual(limited, got[:n]) {
					t.Fatalf("round %d: SearchN(%q, %d) = %q, want %q", round, prefix, limit, limited, got[:n])
				}
			}
		}

		for _, w := range words {
			if !slices.Contains(Search(trie, w), w) {
				t.Fatalf("round %d: Search(%q) does not contain the word itself", round, w)
			}
		}
	}
}
