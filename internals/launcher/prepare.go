package launcher

import (
	"context"
	"fmt"
	"os"

	"github.com/jwalton/gchalk"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/minepkg/assetguard/internals/assetguard"
	"github.com/minepkg/assetguard/internals/cmdlog"
	"github.com/minepkg/assetguard/internals/commands"
	"github.com/minepkg/assetguard/internals/distro"
	"github.com/minepkg/assetguard/internals/downloadmgr"
	"github.com/minepkg/assetguard/internals/minecraft"
	"github.com/minepkg/assetguard/internals/utils"
)

// Prepare validates and downloads everything the server needs, including the java runtime
func (l *Launcher) Prepare(ctx context.Context) (*assetguard.Result, error) {
	server, err := l.Server(ctx)
	if err != nil {
		return nil, err
	}
	l.printIntro(server)

	if _, err := l.prepareJava(ctx, l.javaMajor(server)); err != nil {
		return nil, err
	}

	var res assetguard.Result
	if l.Interactive() {
		res, err = l.runProgressView(ctx, server.ID)
		if err != nil {
			return nil, err
		}
	} else {
		res = l.engine.ValidateEverything(ctx, server.ID)
	}
	if res.Err != nil {
		return nil, res.Err
	}

	l.printOutro(&res)
	return &res, nil
}

// CategorySummary is the queued work of one download category
type CategorySummary struct {
	Category downloadmgr.Category
	Count    int
	Size     int64
}

// Summary is the result of a resolve-only pass
type Summary struct {
	Server     *distro.Server
	Version    *minecraft.VersionData
	Categories []CategorySummary
	Extract    []string
}

// Missing returns the number of queued files
func (s *Summary) Missing() int {
	n := 0
	for _, c := range s.Categories {
		n += c.Count
	}
	return n
}

// Validate resolves everything the server needs without downloading it
func (l *Launcher) Validate(ctx context.Context) (*Summary, error) {
	server, err := l.Server(ctx)
	if err != nil {
		return nil, err
	}
	l.printIntro(server)

	unlock, err := l.engine.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	spinner := NewMaybeSpinner(l.Interactive())
	spinner.Update("Validating files")
	spinner.Start()
	_, v, err := l.engine.Resolve(ctx, server.ID)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	summary := &Summary{Server: server, Version: v, Extract: l.engine.ExtractQueue()}
	for _, c := range downloadmgr.Categories {
		t := l.engine.Tracker(c)
		if t.Len() == 0 {
			continue
		}
		summary.Categories = append(summary.Categories, CategorySummary{Category: c, Count: t.Len(), Size: t.Size()})
	}
	// largest first
	slices.SortStableFunc(summary.Categories, func(a, b CategorySummary) bool {
		return a.Size > b.Size
	})
	return summary, nil
}

// PrintSummary prints the queued files per category
func (l *Launcher) PrintSummary(s *Summary) {
	if s.Missing() == 0 {
		fmt.Println(commands.StylePipe.Render(gchalk.Green("Everything is up to date")))
		return
	}
	var total int64
	for _, c := range s.Categories {
		total += c.Size
		fmt.Printf("│ %-10s %8s files %10s\n", c.Category, cmdlog.HumanCount(c.Count), cmdlog.HumanBytes(c.Size))
	}
	fmt.Printf("│ %s\n", gchalk.Bold(fmt.Sprintf("%d files missing (%s)", s.Missing(), cmdlog.HumanBytes(total))))
	if len(s.Extract) > 0 {
		fmt.Printf("│ %s\n", gchalk.Gray(fmt.Sprintf("%d files need to be unpacked after downloading", len(s.Extract))))
	}
}

// Natives prepares the server and extracts the native libraries into the scratch directory
func (l *Launcher) Natives(ctx context.Context) ([]string, error) {
	res, err := l.Prepare(ctx)
	if err != nil {
		return nil, err
	}
	dir := l.Settings.NativesDirectory()
	extracted, err := l.engine.ExtractNatives(res.VersionData, dir)
	if err != nil {
		return extracted, errors.Wrap(err, "could not extract natives")
	}
	return extracted, nil
}

// ClearNatives removes the natives scratch directory
func (l *Launcher) ClearNatives() error {
	return os.RemoveAll(l.Settings.NativesDirectory())
}

func (l *Launcher) printIntro(server *distro.Server) {
	title := server.Name
	if title == "" {
		title = server.ID
	}
	fmt.Println(commands.StyleTitle.Render(title))
	fmt.Println("│")
	fmt.Println("│ Minecraft " + server.MinecraftVersion + gchalk.Gray(" ("+server.ID+")"))
	fmt.Println("│ Directory: " + l.Settings.DataDirectory)
	if l.User.Valid() {
		fmt.Println("│ Account: " + l.User.String())
	}
	fmt.Println("│")
}

func (l *Launcher) printOutro(res *assetguard.Result) {
	java := l.engine.JavaExecutable()
	if java == "" {
		java = "(none)"
	}
	fmt.Println("│ Forge " + utils.PrettyVersion(res.ForgeData.ID))
	fmt.Println("│ Java " + java)
	if n := l.state.failed.Load(); n > 0 {
		fmt.Println("│ " + gchalk.Yellow(fmt.Sprintf("%d files could not be downloaded", n)))
	}
	if l.Version != "" {
		fmt.Println("│ assetguard " + l.Version)
	}
	fmt.Println(commands.StyleGrass.Render(commands.Emoji("⛏  ") + "Ready"))
}
