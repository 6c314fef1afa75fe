package trie

import "errors"

// ErrNegativeLimit 结果数量上限为负数
var ErrNegativeLimit = errors.New("trie: negative limit")

// WalkFunc 检索时对每个匹配的词调用, 返回 false 停止遍历
type WalkFunc func(word string) bool

// frame 遍历栈中的一项
type frame struct {
	node *Node
	at   int  // 父节点路径在缓冲区中的长度
	r    rune // 父节点到 node 的键
}

// pushChildren 将 node 的子节点按码点逆序入栈, 使码点最小的最先出栈
func pushChildren(stack []frame, node *Node, at int) []frame {
	keys := node.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: node.children[keys[i]], at: at, r: keys[i]})
	}
	return stack
}

// Walk 按结果顺序遍历以 prefix 开头的所有词
// prefix 本身是词时最先返回, 随后按码点升序深度优先(先序)返回更长的词
// 使用显式栈和共享路径缓冲区, 不受词长度导致的递归深度影响
func Walk(t *Trie, prefix string, fn WalkFunc) {
	node := t.find(prefix)
	if node == nil {
		return
	}
	if node.terminal && !fn(prefix) {
		return
	}

	buf := []byte(prefix)
	stack := pushChildren(nil, node, len(buf))
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		buf = appendKey(buf[:top.at], top.r)
		if top.node.terminal && !fn(string(buf)) {
			return
		}
		stack = pushChildren(stack, top.node, len(buf))
	}
}

// Search 返回以 prefix 开头的所有词
// 前缀不存在时返回空切片
func Search(t *Trie, prefix string) []string {
	words := make([]string, 0)
	Walk(t, prefix, func(word string) bool {
		words = append(words, word)
		return true
	})
	return words
}

// SearchN 返回以 prefix 开头的至多 limit 个词
// 收集满 limit 个后立即停止遍历, 结果是 Search 结果的前缀
func SearchN(t *Trie, prefix string, limit int) ([]string, error) {
	if limit < 0 {
		return nil, ErrNegativeLimit
	}
	words := make([]string, 0, min(limit, t.size))
	if limit == 0 {
		return words, nil
	}
	Walk(t, prefix, func(word string) bool {
		words = append(words, word)
		return len(words) < limit
	})
	return words, nil
}
