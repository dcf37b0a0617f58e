package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jwalton/gchalk"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	out       io.Writer
	emojis    bool
	indention int
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a bold cyan line
func (l *Logger) Headline(s string) {
	fmt.Fprintln(l.out, gchalk.Bold(gchalk.Cyan(s)))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Log prints a gray line
func (l *Logger) Log(s string) {
	l.println(gchalk.Gray(s))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	l.println(l.sprintEmoji("⚠️ ") + gchalk.Bold(gchalk.Yellow(s)))
}

// Error prints the error without exiting
func (l *Logger) Error(s string) {
	l.println(l.sprintEmoji("💣") + gchalk.Bold(gchalk.Red("Error: ")) + gchalk.Bold(s))
}

// Fail will print the given message and then exit 1
func (l *Logger) Fail(s string) {
	l.Error(s)
	os.Exit(1)
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	return &Task{Logger: &logger, end: end}
}

// Indent returns a copy of the logger that indents every line by n spaces
func (l *Logger) Indent(n int) *Logger {
	logger := *l
	logger.indention += n
	return &logger
}

// New returns a new Logger writing to stdout
func New() *Logger {
	return NewWriter(os.Stdout)
}

// NewWriter returns a new Logger writing to w
func NewWriter(w io.Writer) *Logger {
	emojis := runtime.GOOS != "windows"

	// disable color for CI
	if os.Getenv("CI") != "" {
		emojis = false
		DisableColor()
	}
	return &Logger{out: w, emojis: emojis}
}

// DisableColor turns off all colored output
func DisableColor() {
	gchalk.SetLevel(gchalk.LevelNone)
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (l *Task) Step(e string, s string) {
	l.current++
	text := gchalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		l.current,
		l.end,
		l.sprintEmoji(e),
		s,
	))

	// we don't use l.println here, because step headlines should have no indentation
	fmt.Fprintln(l.out, text)
}

// HumanBytes formats a byte count ("1.2 MB")
func HumanBytes(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}

// HumanCount formats a count with thousands separators
func HumanCount(n int) string {
	return humanize.Comma(int64(n))
}
