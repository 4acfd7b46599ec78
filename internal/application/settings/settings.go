// Package settings defines application-level configuration data.
package settings

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up           string `yaml:"up" kong:"help='Up key',default='k'"`
	Down         string `yaml:"down" kong:"help='Down key',default='j'"`
	Open         string `yaml:"open" kong:"help='Open feed options key',default='enter'"`
	Back         string `yaml:"back" kong:"help='Back key',default='esc'"`
	Quit         string `yaml:"quit" kong:"help='Quit key',default='q'"`
	Filter       string `yaml:"filter" kong:"help='Cycle All/Unread/Starred key',default='f'"`
	ToggleGroup  string `yaml:"toggle_group" kong:"help='Expand or collapse group key',default='space'"`
	DeleteFeed   string `yaml:"delete_feed" kong:"help='Unsubscribe key',default='x'"`
	Rename       string `yaml:"rename" kong:"help='Rename feed key',default='r'"`
	MoveGroup    string `yaml:"move_group" kong:"help='Move feed to next group key',default='m'"`
	NewGroup     string `yaml:"new_group" kong:"help='Create group key',default='n'"`
	ToggleNotify string `yaml:"toggle_notify" kong:"help='Toggle notification preset key',default='N'"`
	ToggleFull   string `yaml:"toggle_full" kong:"help='Toggle full content preset key',default='F'"`
	Export       string `yaml:"export" kong:"help='Export OPML key',default='e'"`
	Top          string `yaml:"top" kong:"help='Top key',default='g'"`
	Bottom       string `yaml:"bottom" kong:"help='Bottom key',default='G'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	FeedName string `yaml:"feed_name" kong:"help='Feed name color',default='244'"`
	Banner   string `yaml:"banner" kong:"help='Banner background color',default='62'"`
}

// Settings represents the application configuration.
type Settings struct {
	DBFile     string       `yaml:"db_file" kong:"help='SQLite database path'"`
	Account    string       `yaml:"account" kong:"help='Active account name',default='Local'"`
	Locale     string       `yaml:"locale" kong:"help='Message locale (en, ja)',default='en'"`
	ExportFile string       `yaml:"export_file" kong:"help='Where the TUI writes exported OPML'"`
	KeyMap     KeyMapConfig `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme      ThemeConfig  `yaml:"theme" kong:"embed,prefix='theme.'"`
}
