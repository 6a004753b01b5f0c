package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-lite/internal/config"
	"github.com/vovakirdan/flappy-lite/internal/core"
)

// KeyMap holds the rebindable bindings built from the settings file.
// Quit (ctrl+c) is always bound so a broken settings file can't trap the
// player.
type KeyMap struct {
	Jump       key.Binding
	Start      key.Binding
	Exit       key.Binding
	Fullscreen key.Binding
	Pause      key.Binding
	Quit       key.Binding
}

// keyAliases maps Tk-style event names onto Bubble Tea key strings.
var keyAliases = map[string]string{
	"space":     " ",
	"return":    "enter",
	"kp_enter":  "enter",
	"escape":    "esc",
	"backspace": "backspace",
	"tab":       "tab",
	"prior":     "pgup",
	"next":      "pgdown",
}

// NormalizeKey turns a key name from the settings file into the string
// tea.KeyMsg.String() produces. Both Bubble Tea names ("up", " ", "enter")
// and Tk-style events ("<Up>", "<space>", "<Return>") are accepted.
// Single characters keep their case, so "p" and "P" stay distinct.
func NormalizeKey(name string) string {
	if name == " " {
		return name
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">") && len(name) > 2 {
		name = name[1 : len(name)-1]
		name = strings.TrimPrefix(name, "KeyPress-")
		name = strings.TrimPrefix(name, "Key-")
	}
	if len([]rune(name)) == 1 {
		return name
	}

	lower := strings.ToLower(name)
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	lower = strings.Replace(lower, "control-", "ctrl+", 1)
	lower = strings.Replace(lower, "alt-", "alt+", 1)
	lower = strings.Replace(lower, "shift-", "shift+", 1)
	return lower
}

// displayKey is the label shown in the help footer.
func displayKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return k
}

func binding(desc string, names ...string) key.Binding {
	var keys, labels []string
	seen := make(map[string]bool)
	for _, n := range names {
		k := NormalizeKey(n)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
		labels = append(labels, displayKey(k))
	}
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(labels, "/"), desc),
	)
}

// NewKeyMap builds the bindings from settings.
func NewKeyMap(s config.Settings) KeyMap {
	return KeyMap{
		Jump:       binding("flap", s.BirdEvent, s.Bird2Event),
		Start:      binding("start", s.WindowStartEvent),
		Exit:       binding("quit", s.WindowExitEvent),
		Fullscreen: binding("fullscreen", s.WindowFullscreenEvent),
		Pause:      binding("pause", s.WindowPauseEvent, s.WindowPause2Event),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// Action resolves a key press. Exit and Quit both map to ActionExit.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit), key.Matches(msg, k.Exit):
		return core.ActionExit
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Fullscreen):
		return core.ActionFullscreen
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	}
	return core.ActionNone
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Start, k.Pause, k.Fullscreen, k.Exit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Start},
		{k.Pause, k.Fullscreen, k.Exit},
	}
}

// Bindings lists every binding with its action name, for the CLI listing.
func (k KeyMap) Bindings() []NamedBinding {
	return []NamedBinding{
		{core.ActionJump, k.Jump},
		{core.ActionStart, k.Start},
		{core.ActionPause, k.Pause},
		{core.ActionFullscreen, k.Fullscreen},
		{core.ActionExit, k.Exit},
	}
}

// NamedBinding pairs an action with its binding.
type NamedBinding struct {
	Action  core.Action
	Binding key.Binding
}
