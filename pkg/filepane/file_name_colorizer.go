package filepane

import (
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

const (
	dirEmoji  = "📁"
	fileEmoji = "📄"
)

var fileColors = map[string]color.Attribute{
	"exe":  color.FgRed,
	"go":   color.FgHiCyan,
	"c":    color.FgBlue,
	"h":    color.FgBlue,
	"cpp":  color.FgBlue,
	"js":   color.FgYellow,
	"ts":   color.FgHiBlue,
	"html": color.FgHiRed,
	"css":  color.FgMagenta,
	"json": color.FgHiYellow,
	"yaml": color.FgHiYellow,
	"yml":  color.FgHiYellow,
	"md":   color.FgHiWhite,
	"py":   color.FgHiGreen,
	"sh":   color.FgGreen,
	"txt":  color.FgWhite,
	"log":  color.FgHiBlack,
	"jpg":  color.FgHiMagenta,
	"jpeg": color.FgHiMagenta,
	"png":  color.FgHiMagenta,
	"gif":  color.FgHiMagenta,
	"mp4":  color.FgHiRed,
	"mov":  color.FgHiRed,
}

var dirColor = color.New(color.FgBlue, color.Bold)

func colorizeName(name string, isDir bool) string {
	if isDir {
		return dirEmoji + dirColor.Sprint(name)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if attr, ok := fileColors[ext]; ok {
		return fileEmoji + color.New(attr).Sprint(name)
	}
	return fileEmoji + name
}
