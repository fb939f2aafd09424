// ABOUTME: Actor identity resolution for td commands.
// ABOUTME: Order: --actor flag, TD_ACTOR env, config.yml, git user.name, then "unknown".

package td

import (
	"os"
	"os/exec"
	"strings"
)

const actorEnvVar = "TD_ACTOR"

func resolveActor(opts GlobalOptions, dir string) string {
	if opts.Actor != "" {
		return opts.Actor
	}
	if env := os.Getenv(actorEnvVar); env != "" {
		return env
	}
	if cfg, err := loadConfig(dir); err == nil && cfg.Actor != "" {
		return cfg.Actor
	}
	if name := gitUserName(); name != "" {
		return name
	}
	return "unknown"
}

func gitUserName() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
