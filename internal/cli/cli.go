package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/appfs"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/blob"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/clipboard"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/clipboard/sysboard"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/config"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/engine"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/gifcache"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/logging"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/recents"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/store"
	"github.com/osamaGXDgaming/all-in-one-clipboard/internal/watcher"
)

// recentsFeatures are the picker features whose recents lists the daemon
// hosts.
var recentsFeatures = []string{"emoji", "kaomoji", "symbols", "gifs"}

// CLI handles the command-line interface
type CLI struct {
	manager *config.Manager
	dirs    appfs.Dirs
	history *store.HistoryStore
	pinned  *store.PinnedStore
	texts   *blob.Store
	images  *blob.Store

	// newBoard is swapped out in tests; production uses the system
	// clipboard and only commands that touch the clipboard call it.
	newBoard func() (clipboard.Board, error)
}

// NewWithArgs creates a CLI instance from parsed arguments.
func NewWithArgs(args *Args) (*CLI, error) {
	var manager *config.Manager
	if args != nil && args.ConfigPath != nil {
		manager = config.NewManagerWithPath(*args.ConfigPath)
	} else {
		var err error
		manager, err = config.NewManager()
		if err != nil {
			return nil, err
		}
	}
	cfg := manager.Load()

	// Flags win over the config file for logging.
	level, format := cfg.LogLevel, cfg.LogFormat
	if args != nil && args.LogLevel != "" {
		level = args.LogLevel
	}
	if args != nil && args.LogFormat != "" {
		format = args.LogFormat
	}
	logging.Setup(logging.ParseFormat(format), logging.ParseLevel(level))

	dirs, err := appfs.Resolve(cfg.CacheDir, cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return newWithDeps(manager, dirs, func() (clipboard.Board, error) {
		return sysboard.New()
	})
}

// newWithDeps wires the stores; tests supply a mock board factory.
func newWithDeps(manager *config.Manager, dirs appfs.Dirs, newBoard func() (clipboard.Board, error)) (*CLI, error) {
	texts, err := blob.New(dirs.TextsDir())
	if err != nil {
		return nil, err
	}
	images, err := blob.New(dirs.ImagesDir())
	if err != nil {
		return nil, err
	}

	cfg := manager.Snapshot()
	return &CLI{
		manager:  manager,
		dirs:     dirs,
		history:  store.NewHistoryStore(dirs.HistoryFile(), cfg.MaxHistory),
		pinned:   store.NewPinnedStore(dirs.PinnedFile()),
		texts:    texts,
		images:   images,
		newBoard: newBoard,
	}, nil
}

// buildEngine assembles the engine around the CLI's stores.
func (c *CLI) buildEngine(board clipboard.Board) *engine.Engine {
	cfg := c.manager.Snapshot()
	return engine.New(engine.Options{
		History: c.history,
		Pinned:  c.pinned,
		Texts:   c.texts,
		Images:  c.images,
		Board:   board,
		Settings: engine.Settings{
			MaxHistory:          cfg.MaxHistory,
			UpdateRecencyOnCopy: cfg.UpdateRecencyOnCopy,
			UnpinOnPaste:        cfg.UnpinOnPaste,
		},
	})
}

// Execute runs the CLI command based on parsed arguments
func (c *CLI) Execute(args *Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	switch {
	case args.Watch != nil:
		return c.runWatch(args.Watch)
	case args.List != nil:
		return c.runList()
	case args.Pinned != nil:
		return c.runPinned()
	case args.Get != nil:
		return c.runGet(args.Get)
	case args.Pin != nil:
		return c.runPin(args.Pin)
	case args.Unpin != nil:
		return c.runUnpin(args.Unpin)
	case args.Delete != nil:
		return c.runDelete(args.Delete)
	case args.GC != nil:
		return c.runGC()
	case args.Recents != nil:
		return c.runRecents(args.Recents)
	case args.Config != nil:
		return c.runConfig(args.Config)
	default:
		return fmt.Errorf("no command specified")
	}
}

// runWatch runs the daemon until interrupted.
func (c *CLI) runWatch(cmd *WatchCmd) error {
	board, err := c.newBoard()
	if err != nil {
		return fmt.Errorf("failed to open system clipboard: %w", err)
	}

	eng := c.buildEngine(board)
	eng.Start()
	eng.SetPaused(cmd.Paused)

	gifcache.New(c.dirs.GIFPreviewDir()).Evict(gifcache.DefaultMaxAge, gifcache.DefaultMaxBytes)

	// The daemon hosts the picker recents lists too, so their bounds
	// follow live config.
	cfg := c.manager.Snapshot()
	recentsStores := make([]*recents.Store, 0, len(recentsFeatures))
	for _, feature := range recentsFeatures {
		s := recents.New(feature, c.dirs.RecentsFile(feature), cfg.RecentsLimit(feature))
		s.Load()
		recentsStores = append(recentsStores, s)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Settings changes apply live: a smaller max_history re-prunes
	// immediately, a smaller recents bound re-truncates.
	c.manager.Subscribe(func(cfg config.Config) {
		eng.ApplySettings(engine.Settings{
			MaxHistory:          cfg.MaxHistory,
			UpdateRecencyOnCopy: cfg.UpdateRecencyOnCopy,
			UnpinOnPaste:        cfg.UnpinOnPaste,
		})
		for _, s := range recentsStores {
			s.SetLimit(cfg.RecentsLimit(s.Feature()))
		}
	})
	if err := c.manager.Watch(ctx); err != nil {
		return err
	}

	watcher.New(board, eng, watcher.DefaultDebounce).Run(ctx)
	return nil
}

func (c *CLI) runList() error {
	eng := c.buildEngine(nil)
	eng.Load()
	return printItems(eng.HistoryItems())
}

func (c *CLI) runPinned() error {
	eng := c.buildEngine(nil)
	eng.Load()
	return printItems(eng.PinnedItems())
}

func printItems(items []store.ClipItem) error {
	for _, it := range items {
		switch it.Kind {
		case store.KindImage:
			fmt.Printf("%s\t%s\t[image %s]\n", it.ID, it.Timestamp.Format("2006-01-02 15:04:05"), it.ImageFilename)
		default:
			fmt.Printf("%s\t%s\t%s\n", it.ID, it.Timestamp.Format("2006-01-02 15:04:05"), firstLine(it.Preview))
		}
	}
	return nil
}

// firstLine keeps list output one row per item.
func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + "…"
		}
	}
	return s
}

func (c *CLI) runGet(cmd *GetCmd) error {
	var board clipboard.Board
	if cmd.Copy {
		b, err := c.newBoard()
		if err != nil {
			return fmt.Errorf("failed to open system clipboard: %w", err)
		}
		board = b
	}

	eng := c.buildEngine(board)
	eng.Load()

	if cmd.Copy {
		if err := eng.CopyItem(cmd.ID); err != nil {
			return err
		}
		eng.PromoteToTop(cmd.ID)
		return nil
	}

	if data, _, ok := eng.ImageData(cmd.ID); ok {
		_, err := os.Stdout.Write(data)
		return err
	}
	content := eng.FullContent(cmd.ID)
	if content == "" {
		return fmt.Errorf("unknown item %s", cmd.ID)
	}
	fmt.Println(content)
	return nil
}

func (c *CLI) runPin(cmd *PinCmd) error {
	eng := c.buildEngine(nil)
	eng.Load()
	return eng.Pin(cmd.ID)
}

func (c *CLI) runUnpin(cmd *UnpinCmd) error {
	eng := c.buildEngine(nil)
	eng.Load()
	return eng.Unpin(cmd.ID)
}

func (c *CLI) runDelete(cmd *DeleteCmd) error {
	eng := c.buildEngine(nil)
	eng.Load()
	return eng.Delete(cmd.ID)
}

func (c *CLI) runGC() error {
	eng := c.buildEngine(nil)
	eng.Start()
	gifcache.New(c.dirs.GIFPreviewDir()).Evict(gifcache.DefaultMaxAge, gifcache.DefaultMaxBytes)
	return nil
}

func (c *CLI) runRecents(cmd *RecentsCmd) error {
	cfg := c.manager.Snapshot()
	s := recents.New(cmd.Feature, c.dirs.RecentsFile(cmd.Feature), cfg.RecentsLimit(cmd.Feature))
	s.Load()

	if cmd.Add != nil {
		return s.Add(recents.Item{Value: *cmd.Add})
	}
	for _, it := range s.Items() {
		fmt.Println(it.Value)
	}
	return nil
}

func (c *CLI) runConfig(cmd *ConfigCmd) error {
	switch {
	case cmd.Key == nil:
		settings := c.manager.List()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s = %s\n", k, settings[k])
		}
		return nil
	case cmd.Value == nil:
		v, err := c.manager.Get(*cmd.Key)
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil
	default:
		return c.manager.Update(*cmd.Key, *cmd.Value)
	}
}
