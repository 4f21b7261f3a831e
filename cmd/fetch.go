package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/mdpkg/mdpkg/internals/commands"
	"github.com/mdpkg/mdpkg/internals/downloadmgr"
	"github.com/mdpkg/mdpkg/internals/workspace"
)

func init() {
	runner := &fetchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "fetch",
		Short: "Downloads all locked requirement artifacts into the cache",
		Args:  cobra.NoArgs,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type fetchRunner struct{}

// cacheDir returns where fetched artifacts live ($HOME/.mdpkg/cache)
func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mdpkg", "cache"), nil
}

func (f *fetchRunner) RunE(cmd *cobra.Command, args []string) error {
	ws, err := workspace.NewFromWd()
	if err != nil {
		return err
	}
	if !ws.HasLockfile() {
		return &commands.CliError{
			Text: "there is no lockfile to fetch from",
			Suggestions: []string{
				`Run "mdpkg lock" first`,
			},
		}
	}

	cache, err := cacheDir()
	if err != nil {
		return err
	}

	mgr := &downloadmgr.DownloadManager{}
	queued := mgr.AddFromLockfile(ws.Lockfile, cache)
	if queued == 0 {
		logger.Info("Nothing to fetch")
		return nil
	}

	s := spinner.New(spinner.CharSets[9], 300*time.Millisecond)
	s.Prefix = " "
	s.Suffix = fmt.Sprintf(" Fetching %d artifacts", queued)
	s.Start()
	mgr.OnProgress = func(p int) {
		s.Suffix = fmt.Sprintf(" Fetching %d artifacts (%d%%)", queued, p)
	}

	err = mgr.Start(cmd.Context())
	s.Stop()
	if err != nil {
		return err
	}

	logger.Info(fmt.Sprintf(" ✓ Fetched %d artifacts into %s", queued, cache))
	return nil
}
