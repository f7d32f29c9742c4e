package column

import "github.com/treeline-dev/treeline/internal/git"

// Directory glyph variants for the icon column.
const (
	IconDirClosed  = ""
	IconDirOpen    = ""
	IconDirSymlink = ""
	IconFileLink   = ""
	IconFileOther  = ""
)

// Mark column glyphs.
const (
	MarkReadOnly = ""
	MarkSelected = "✓"
)

// Indent column glyphs, two display columns each.
const (
	IndentBar    = "│ "
	IndentBlank  = "  "
	IndentBranch = "├ "
	IndentLast   = "└ "
)

type fileIcon struct {
	Glyph string
	Group string
}

// fileIcons maps file extensions to a Nerd Font glyph and the highlight
// group carrying its color.
var fileIcons = map[string]fileIcon{
	".go":   {"󰟓", "icon_aqua"},
	".mod":  {"󰏗", "icon_grey"},
	".sum":  {"󰏗", "icon_grey"},
	".rs":   {"", "icon_orange"},
	".py":   {"", "icon_yellow"},
	".rb":   {"", "icon_red"},
	".js":   {"", "icon_yellow"},
	".ts":   {"", "icon_blue"},
	".tsx":  {"", "icon_blue"},
	".jsx":  {"", "icon_blue"},
	".vue":  {"", "icon_green"},
	".html": {"", "icon_orange"},
	".css":  {"", "icon_blue"},
	".scss": {"", "icon_pink"},
	".json": {"", "icon_yellow"},
	".yaml": {"", "icon_purple"},
	".yml":  {"", "icon_purple"},
	".toml": {"", "icon_grey"},
	".xml":  {"", "icon_orange"},
	".md":   {"󰍔", "icon_blue"},
	".txt":  {"", "icon_grey"},
	".sh":   {"", "icon_green"},
	".bash": {"", "icon_green"},
	".zsh":  {"", "icon_green"},
	".fish": {"", "icon_green"},
	".c":    {"", "icon_blue"},
	".h":    {"", "icon_purple"},
	".cpp":  {"", "icon_blue"},
	".hpp":  {"", "icon_purple"},
	".java": {"", "icon_red"},
	".kt":   {"", "icon_orange"},
	".lua":  {"", "icon_blue"},
	".vim":  {"", "icon_green"},
	".sql":  {"", "icon_grey"},
	".png":  {"", "icon_purple"},
	".jpg":  {"", "icon_purple"},
	".jpeg": {"", "icon_purple"},
	".gif":  {"", "icon_purple"},
	".svg":  {"󰜡", "icon_orange"},
	".ico":  {"", "icon_yellow"},
	".pdf":  {"", "icon_red"},
	".zip":  {"", "icon_grey"},
	".tar":  {"", "icon_grey"},
	".gz":   {"", "icon_grey"},
	".lock": {"", "icon_grey"},
	".env":  {"󰈙", "icon_yellow"},
}

// FileIconFor returns the glyph and highlight group for a file extension
// (lower-cased, dot included). Unknown extensions get a generic glyph.
func FileIconFor(ext string) (string, string) {
	if ic, ok := fileIcons[ext]; ok {
		return ic.Glyph, ic.Group
	}
	return IconFileOther, "icon_grey"
}

type gitGlyph struct {
	Glyph string
	Group string
}

var gitGlyphs = map[git.Status]gitGlyph{
	git.StatusUntracked: {"✭", "git_untracked"},
	git.StatusModified:  {"✹", "git_modified"},
	git.StatusStaged:    {"✚", "git_staged"},
	git.StatusRenamed:   {"➜", "git_renamed"},
	git.StatusIgnored:   {"☒", "git_ignored"},
	git.StatusUnmerged:  {"═", "git_unmerged"},
	git.StatusDeleted:   {"✖", "git_deleted"},
	git.StatusUnknown:   {"?", "git_unknown"},
}

// GitGlyphFor returns the glyph and highlight group for a git status.
// StatusNone renders blank.
func GitGlyphFor(s git.Status) (string, string) {
	if g, ok := gitGlyphs[s]; ok {
		return g.Glyph, g.Group
	}
	return "", ""
}
