// Package trie 实现按码点索引的前缀树以及前缀检索.
//
// 子节点按码点升序遍历, 因此检索结果的顺序在不同进程间保持一致.
// 非法UTF-8字节按原字节保存, 不会与 U+FFFD 或其他非法字节合并.
package trie

import "unicode/utf8"

// Trie 前缀树
type Trie struct {
	root *Node // 根节点, 对应空前缀
	size int   // 不重复的词数量
}

// New 创建一个空的前缀树
func New() *Trie {
	return &Trie{root: newNode()}
}

// Build 由词列表构建前缀树
// 重复的词只保留一份, words 不会被修改
func Build(words []string) *Trie {
	t := New()
	for _, word := range words {
		t.Insert(word)
	}
	return t
}

// Insert 插入一个词, 词此前不存在时返回 true
// 空字符串会将根节点标记为词尾
func (t *Trie) Insert(word string) bool {
	node := t.root
	for i := 0; i < len(word); {
		key, size := nextKey(word[i:])
		i += size
		child, ok := node.children[key]
		if !ok {
			child = newNode()
			node.children[key] = child
		}
		node = child
	}
	if node.terminal {
		return false
	}
	node.terminal = true
	t.size++
	return true
}

// Contains 判断词是否存在
func (t *Trie) Contains(word string) bool {
	node := t.find(word)
	return node != nil && node.terminal
}

// Len 不重复的词数量
func (t *Trie) Len() int { return t.size }

// Root 根节点
func (t *Trie) Root() *Node { return t.root }

// find 沿 prefix 下降, 前缀不存在时返回 nil
func (t *Trie) find(prefix string) *Node {
	node := t.root
	for i := 0; i < len(prefix); {
		key, size := nextKey(prefix[i:])
		i += size
		child, ok := node.children[key]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// nextKey 解码 s 开头的一个键
// 合法码点以自身为键; 非法UTF-8字节 b 以 -1-b 为键, 任何码点都不会产生该值
func nextKey(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size == 1 {
		return -1 - rune(s[0]), 1
	}
	return r, size
}

// appendKey 将键还原为原始字节追加到 buf
func appendKey(buf []byte, key rune) []byte {
	if key < 0 {
		return append(buf, byte(-1-key))
	}
	return utf8.AppendRune(buf, key)
}
