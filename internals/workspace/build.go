package workspace

import (
	"os"
	"os/exec"
	"runtime"
)

// DefaultBuildScript is used when the recipe doesn't set build.script
const DefaultBuildScript = "make build"

// shellCommand wraps a script for the platform shell
func shellCommand(script string, dir string) *exec.Cmd {
	cmd := exec.Command("sh", "-c", script)
	if runtime.GOOS == "windows" {
		cmd = exec.Command("powershell", "-Command", script)
	}
	cmd.Dir = dir
	cmd.Env = os.Environ()
	return cmd
}

// BuildScript returns the command that builds this package.
// Falls back to DefaultBuildScript when the recipe doesn't set one
func (w *Workspace) BuildScript() *exec.Cmd {
	script := w.Recipe.Build.Script
	if script == "" {
		script = DefaultBuildScript
	}

	cmd := shellCommand(script, w.Dir)
	cmd.Env = append(cmd.Env, "MDPKG_BUILD_DIR="+w.BuildDir())
	return cmd
}

// TestCommands returns one command per test.commands entry, in declaration
// order. The build dir is prepended to the PATH so the declared entry
// points are callable
func (w *Workspace) TestCommands() []*exec.Cmd {
	cmds := make([]*exec.Cmd, len(w.Recipe.Test.Commands))
	for i, script := range w.Recipe.Test.Commands {
		cmd := shellCommand(script, w.Dir)
		cmd.Env = append(cmd.Env,
			"PATH="+binDir(w.BuildDir())+string(os.PathListSeparator)+os.Getenv("PATH"),
		)
		cmds[i] = cmd
	}
	return cmds
}
