package dictionary

import "errors"

// ErrEmptyWord 词条内容为空
var ErrEmptyWord = errors.New("dictionary: empty word")

// keyPrefix 词条在badger中的key前缀
const keyPrefix = "dict/"

// DictEntry 字典词条
type DictEntry struct {
	Content   string  `json:"content"`   // 词条内容
	Frequency float64 `json:"frequency"` // 词频
	Pos       string  `json:"pos"`       // 词性
}

// entryKey 词条的存储key
func entryKey(content string) []byte {
	return []byte(keyPrefix + content)
}
