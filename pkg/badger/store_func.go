package badger

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// ErrNotFound key不存在
var ErrNotFound = badger.ErrKeyNotFound

// restoreMaxPendingWrites 恢复备份时的最大挂起写入数
const restoreMaxPendingWrites = 256

// BadgerTX 事务函数
type BadgerTX func(tx *badger.Txn) error

// TxSet 事务设置参数操作
func (e *Engine) TxSet(tx BadgerTX) error {
	return e.db.Update(tx)
}

// TxGet 事务获取参数操作
func (e *Engine) TxGet(tx BadgerTX) error {
	return e.db.View(tx)
}

// Set 设置参数
func (e *Engine) Set(key, value []byte) error {
	return e.TxSet(func(tx *badger.Txn) error {
		return tx.Set(key, value)
	})
}

// Get 获取参数, key不存在时返回 ErrNotFound
func (e *Engine) Get(key []byte) ([]byte, error) {
	var value []byte
	err := e.TxGet(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Exists 判断key是否存在
func (e *Engine) Exists(key []byte) (bool, error) {
	var exists bool
	err := e.TxGet(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if err == nil {
			exists = true
			return nil
		}
		if errors.Is(err, badger.ErrKeyNotFound) {
			exists = false
			return nil
		}
		return err
	})
	return exists, err
}

// Keys 获取所有key
// @param prefix 前缀, 为nil时返回全部key
func (e *Engine) Keys(prefix []byte) ([][]byte, error) {
	var keys [][]byte

	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // 只获取键，不获取值
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})

	return keys, err
}

// ScanFunc 遍历函数, key和value仅在调用期间有效
type ScanFunc func(key, value []byte) error

// Scan 按key顺序遍历指定前缀的所有键值对, fn 返回错误时停止遍历
func (e *Engine) Scan(prefix []byte, fn ScanFunc) error {
	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := item.Key()
			if err := item.Value(func(val []byte) error {
				return fn(key, val)
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// BadgerBatch 批量操作函数
type BadgerBatch func(*badger.WriteBatch) error

// Batch 批量操作, fn 成功返回后提交全部写入
func (e *Engine) Batch(bb BadgerBatch) error {
	wb := e.db.NewWriteBatch()
	defer wb.Cancel()
	if err := bb(wb); err != nil {
		return err
	}
	return wb.Flush()
}

// Backup 备份数据库
func (e *Engine) Backup(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	since, err := e.db.Backup(f, 0)
	if err != nil {
		return fmt.Errorf("backup to %s: %w", filename, err)
	}
	e.log.Info().Str("file", filename).Uint64("version", since).Msg("badger backup written")
	return f.Close()
}

// Restore 从备份文件恢复数据
func (e *Engine) Restore(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := e.db.Load(f, restoreMaxPendingWrites); err != nil {
		return fmt.Errorf("restore from %s: %w", filename, err)
	}
	e.log.Info().Str("file", filename).Msg("badger backup restored")
	return nil
}
