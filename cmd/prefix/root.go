// Command prefix 维护一个持久化词典并按前缀补全词语.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/miajio/prefix/internal/config"
	"github.com/miajio/prefix/internal/logger"
	"github.com/miajio/prefix/pkg/badger"
	"github.com/miajio/prefix/pkg/dictionary"
)

// app 命令之间共享的全局参数与配置
type app struct {
	cfgFile   string
	storePath string
	verbose   bool

	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "prefix",
		Short: "A persistent dictionary with prefix completion",
		Long: `prefix stores words in an embedded badger database and completes
them by prefix. Words can be added one by one, imported from a word
list, or learned from free text through the gse segmenter.

Examples:
  prefix add cat car cart dog
  prefix complete ca --limit 2
  prefix learn article.txt
  prefix backup words.bak`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().StringVar(&a.storePath, "store", "", "dictionary database directory (overrides store.path)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newCompleteCmd(a),
		newAddCmd(a),
		newImportCmd(a),
		newLearnCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
	)
	return rootCmd
}

// setup 读取配置并创建日志
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.storePath != "" {
		cfg.Store.Path = a.storePath
	}
	if a.verbose {
		cfg.Log.Level = zerolog.LevelDebugValue
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// openStore 按配置打开badger存储
func (a *app) openStore() (*badger.Engine, error) {
	opts := []badger.Option{
		badger.WithLogger(a.log),
		badger.WithGCInterval(a.cfg.Store.GCInterval),
	}
	if a.cfg.Store.InMemory {
		return badger.Memory(opts...)
	}
	if err := os.MkdirAll(a.cfg.Store.Path, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return badger.Default(a.cfg.Store.Path, opts...)
}

// openDictionary 打开存储并载入词典
func (a *app) openDictionary() (*dictionary.Engine, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", a.cfg.Store.Path, err)
	}
	d, err := dictionary.New(store,
		dictionary.WithLogger(a.log),
		dictionary.WithDefaults(a.cfg.Learn.Frequency, a.cfg.Learn.Pos),
	)
	if err != nil {
		store.Close()
		return nil, err
	}
	return d, nil
}

// closeDictionary 关闭词典, 错误只记录日志
func (a *app) closeDictionary(d *dictionary.Engine) {
	if err := d.Close(); err != nil {
		a.log.Error().Err(err).Msg("close dictionary")
	}
}
