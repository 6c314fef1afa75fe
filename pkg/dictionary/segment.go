package dictionary

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// specialChars 标点符号、符号与分隔符
var specialChars = regexp.MustCompile(`^[\p{P}\p{S}\p{Z}\s]+$`)

// IsSpecialChar 判断字符串是否全部由特殊符号组成
func IsSpecialChar(s string) bool {
	if s == "" {
		return false
	}
	return specialChars.MatchString(s)
}

// learnable 分词结果是否可以作为新词学习
// 跳过单字节词与特殊符号
func learnable(token string) bool {
	return len(token) > 1 && !IsSpecialChar(token)
}

// segmentable 词条能否加入gse分词器
// gse词典以空白分隔字段, 含空白的词只进入前缀树
func segmentable(content string) bool {
	return strings.IndexFunc(content, unicode.IsSpace) < 0
}

// gseDict 将词条转换为gse词典格式, 每行 "词 词频 词性"
func gseDict(entries []DictEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if !segmentable(e.Content) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %f %s", e.Content, e.Frequency, e.Pos))
	}
	return strings.Join(lines, "\n")
}
