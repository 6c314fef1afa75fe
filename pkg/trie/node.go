package trie

import "slices"

// Node 前缀树节点, 对应一个码点位置
type Node struct {
	children map[rune]*Node // 子节点, 按码点索引, 非法字节 b 的键为 -1-b
	terminal bool           // 从根到此节点的路径是否为一个完整的词
}

// newNode 创建一个新的前缀树节点
func newNode() *Node {
	return &Node{
		children: make(map[rune]*Node),
	}
}

// IsTerminal 是否为词尾节点
func (n *Node) IsTerminal() bool { return n.terminal }

// Child 获取键 r 对应的子节点
func (n *Node) Child(r rune) (*Node, bool) {
	child, ok := n.children[r]
	return child, ok
}

// Len 子节点数量
func (n *Node) Len() int { return len(n.children) }

// Keys 按升序返回子节点的键
// 非法字节的键为负数, 排在所有码点之前
func (n *Node) Keys() []rune {
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	slices.Sort(keys)
	return keys
}
