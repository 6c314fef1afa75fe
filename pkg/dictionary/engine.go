// Package dictionary 基于badger持久化的词典, 提供前缀补全与新词学习.
//
// 词条保存在badger中, 启动时全部载入前缀树与gse分词器.
package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	bd "github.com/dgraph-io/badger/v4"
	"github.com/go-ego/gse"
	"github.com/rs/zerolog"

	"github.com/miajio/prefix/pkg/badger"
	"github.com/miajio/prefix/pkg/trie"
)

const (
	defaultFrequency = 1000.0 // 学习新词的默认词频
	defaultPos       = "nz"   // 学习新词的默认词性(其他专名)
)

// Engine 词典引擎
type Engine struct {
	mu        sync.RWMutex
	store     *badger.Engine // 数据库
	segmenter gse.Segmenter  // 分词器
	index     *trie.Trie     // 前缀树

	log       zerolog.Logger
	frequency float64 // 学习新词的词频
	pos       string  // 学习新词的词性
}

// Option 词典配置项
type Option func(*Engine)

// WithLogger 设置日志
func WithLogger(log zerolog.Logger) Option {
	return func(d *Engine) { d.log = log }
}

// WithDefaults 设置学习新词时使用的词频与词性
func WithDefaults(frequency float64, pos string) Option {
	return func(d *Engine) {
		d.frequency = frequency
		d.pos = pos
	}
}

// New 创建词典引擎, 从数据库载入全部词条
func New(store *badger.Engine, opts ...Option) (*Engine, error) {
	d := &Engine{
		store:     store,
		log:       zerolog.Nop(),
		frequency: defaultFrequency,
		pos:       defaultPos,
	}
	for _, o := range opts {
		o(d)
	}

	entries, err := loadEntries(store)
	if err != nil {
		return nil, fmt.Errorf("load dictionary from store: %w", err)
	}

	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Content
	}
	d.index = trie.Build(words)

	seg, err := gse.New()
	if err != nil {
		return nil, fmt.Errorf("init gse segmenter: %w", err)
	}
	if len(entries) > 0 {
		seg.LoadDictStr(gseDict(entries))
	}
	d.segmenter = seg

	d.log.Info().Int("words", d.index.Len()).Msg("dictionary loaded")
	return d, nil
}

// loadEntries 从数据库读取全部词条
func loadEntries(store *badger.Engine) ([]DictEntry, error) {
	var entries []DictEntry
	err := store.Scan([]byte(keyPrefix), func(key, value []byte) error {
		var entry DictEntry
		if err := json.Unmarshal(value, &entry); err != nil {
			return fmt.Errorf("decode entry %q: %w", key, err)
		}
		entries = append(entries, entry)
		return nil
	})
	return entries, err
}

// AddWord 添加一个新词到词典
func (d *Engine) AddWord(content string, frequency float64, pos string) error {
	if content == "" {
		return ErrEmptyWord
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	_, err := d.addLocked(DictEntry{
		Content:   content,
		Frequency: frequency,
		Pos:       pos,
	})
	return err
}

// addLocked 保存词条并加入前缀树与分词器, 返回词此前是否不在前缀树中
// 调用方需持有写锁
func (d *Engine) addLocked(entry DictEntry) (bool, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return false, err
	}
	if err := d.store.Set(entryKey(entry.Content), data); err != nil {
		return false, fmt.Errorf("save %q to store: %w", entry.Content, err)
	}
	added := d.index.Insert(entry.Content)
	d.addToken(entry)
	return added, nil
}

// addToken 将词条加入gse分词器, 与重新载入时 gseDict 的规则一致
func (d *Engine) addToken(entry DictEntry) {
	if segmentable(entry.Content) {
		d.segmenter.AddToken(entry.Content, entry.Frequency, entry.Pos)
	}
}

// AddWords 批量添加词条, 返回新增的词数量
// 全部词条在一个写批次中提交, 任一词条无效时不写入任何词条
func (d *Engine) AddWords(entries []DictEntry) (int, error) {
	for _, e := range entries {
		if e.Content == "" {
			return 0, ErrEmptyWord
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	err := d.store.Batch(func(wb *bd.WriteBatch) error {
		for _, e := range entries {
			data, err := json.Marshal(e)
			if err != nil {
				return err
			}
			if err := wb.Set(entryKey(e.Content), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save batch to store: %w", err)
	}

	added := 0
	for _, e := range entries {
		if d.index.Insert(e.Content) {
			added++
		}
		d.addToken(e)
	}
	d.log.Info().Int("entries", len(entries)).Int("added", added).Msg("dictionary batch imported")
	return added, nil
}

// LearnFromText 从文本中学习新词汇, 返回新学到的词
// 判断与写入在同一写锁内完成, 并发学习时每个词只会被一个调用方报告
func (d *Engine) LearnFromText(text string) ([]string, error) {
	learned := make([]string, 0)
	for _, content := range d.Segment(text) {
		// 跳过特殊符号和单字节词
		if !learnable(content) {
			continue
		}
		added, err := d.learn(content)
		if err != nil {
			return learned, fmt.Errorf("learn %q: %w", content, err)
		}
		if added {
			learned = append(learned, content)
			d.log.Debug().Str("word", content).Msg("learned new word")
		}
	}
	return learned, nil
}

// learn 词不存在时以默认词频与词性加入词典
func (d *Engine) learn(content string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.index.Contains(content) {
		return false, nil
	}
	return d.addLocked(DictEntry{Content: content, Frequency: d.frequency, Pos: d.pos})
}

// Complete 返回以 prefix 开头的至多 limit 个词
func (d *Engine) Complete(prefix string, limit int) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return trie.SearchN(d.index, prefix, limit)
}

// CompleteAll 返回以 prefix 开头的所有词
func (d *Engine) CompleteAll(prefix string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return trie.Search(d.index, prefix)
}

// Contains 检查词典中是否包含指定的词
func (d *Engine) Contains(content string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.Contains(content)
}

// Lookup 读取词条, 不存在时返回 badger.ErrNotFound
func (d *Engine) Lookup(content string) (DictEntry, error) {
	var entry DictEntry
	data, err := d.store.Get(entryKey(content))
	if err != nil {
		if errors.Is(err, badger.ErrNotFound) {
			return entry, err
		}
		return entry, fmt.Errorf("read %q from store: %w", content, err)
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, fmt.Errorf("decode entry %q: %w", content, err)
	}
	return entry, nil
}

// Len 词典中的词数量
func (d *Engine) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index.Len()
}

// Segment 对文本进行分词
func (d *Engine) Segment(text string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.segmenter.Cut(text, true)
}

// Close 关闭词典
func (d *Engine) Close() error {
	return d.store.Close()
}
