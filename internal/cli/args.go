package cli

import (
	"fmt"
)

// Args represents the top-level command structure
type Args struct {
	Watch   *WatchCmd   `arg:"subcommand:watch" help:"Run the clipboard history daemon"`
	List    *ListCmd    `arg:"subcommand:list" help:"Print history items, newest first"`
	Pinned  *PinnedCmd  `arg:"subcommand:pinned" help:"Print pinned items"`
	Get     *GetCmd     `arg:"subcommand:get" help:"Print an item's full content"`
	Pin     *PinCmd     `arg:"subcommand:pin" help:"Pin a history item"`
	Unpin   *UnpinCmd   `arg:"subcommand:unpin" help:"Move a pinned item back into history"`
	Delete  *DeleteCmd  `arg:"subcommand:delete" help:"Delete an item and its blobs"`
	GC      *GCCmd      `arg:"subcommand:gc" help:"Reclaim orphaned blob files"`
	Recents *RecentsCmd `arg:"subcommand:recents" help:"Inspect or update a picker's recent items"`
	Config  *ConfigCmd  `arg:"subcommand:config" help:"Get or set configuration values"`

	ConfigPath *string `arg:"--config" help:"Path to the config file"`
	LogLevel   string  `arg:"--log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat  string  `arg:"--log-format" help:"Log format (auto, text, json)"`
}

// WatchCmd runs the daemon: watcher, startup GC, live config reload.
type WatchCmd struct {
	Paused bool `arg:"--paused" help:"Start in private mode (observe but do not record)"`
}

// ListCmd prints history metadata.
type ListCmd struct{}

// PinnedCmd prints pinned metadata.
type PinnedCmd struct{}

// GetCmd prints or copies an item's full content.
type GetCmd struct {
	ID   string `arg:"positional,required" help:"Item id"`
	Copy bool   `arg:"-c,--clipboard" help:"Copy the content back to the clipboard"`
}

// PinCmd pins a history item.
type PinCmd struct {
	ID string `arg:"positional,required" help:"Item id"`
}

// UnpinCmd unpins an item.
type UnpinCmd struct {
	ID string `arg:"positional,required" help:"Item id"`
}

// DeleteCmd deletes an item.
type DeleteCmd struct {
	ID string `arg:"positional,required" help:"Item id"`
}

// GCCmd runs a one-shot garbage collection pass.
type GCCmd struct{}

// RecentsCmd lists or extends a picker feature's recent items.
type RecentsCmd struct {
	Feature string  `arg:"positional,required" help:"Picker feature (emoji, kaomoji, symbols, gifs)"`
	Add     *string `arg:"--add" help:"Value to insert at the front"`
}

// ConfigCmd reads or writes configuration. With no key it lists all
// values; with a key it prints that value; with key and value it updates.
type ConfigCmd struct {
	Key   *string `arg:"positional" help:"Configuration key"`
	Value *string `arg:"positional" help:"New value"`
}

// Description returns the program description
func (Args) Description() string {
	return "all-in-one-clipboard - clipboard history daemon with pinning and picker recents"
}

// Version returns the program version
func (Args) Version() string {
	return "all-in-one-clipboard 0.1.0"
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  all-in-one-clipboard watch             # Run the history daemon
  all-in-one-clipboard list              # Show history
  all-in-one-clipboard get -c <id>       # Copy an item back to the clipboard
  all-in-one-clipboard pin <id>          # Exempt an item from eviction
  all-in-one-clipboard config max-history 100
  all-in-one-clipboard recents emoji --add 😀`
}

// Validate performs validation on the parsed arguments
func (args *Args) Validate() error {
	if args.Config != nil {
		return args.Config.Validate()
	}
	if args.Recents != nil {
		return args.Recents.Validate()
	}
	return nil
}

// Validate validates config command arguments
func (c *ConfigCmd) Validate() error {
	if c.Key == nil && c.Value != nil {
		return fmt.Errorf("cannot set a value without a key")
	}
	return nil
}

// Validate validates recents command arguments
func (r *RecentsCmd) Validate() error {
	if r.Feature == "" {
		return fmt.Errorf("feature must not be empty")
	}
	if r.Add != nil && *r.Add == "" {
		return fmt.Errorf("--add value must not be empty")
	}
	return nil
}
