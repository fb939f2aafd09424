// ABOUTME: Workspace resolution and wiring for the td CLI.
// ABOUTME: Finds .taskdep/ by walking up, opens the store, and assembles engine, oracle, and sinks.

package td

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UmeshaJayakody/taskdep/internal/activity"
	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
	"github.com/UmeshaJayakody/taskdep/internal/sqlite"
	"github.com/UmeshaJayakody/taskdep/internal/team"
)

const (
	workspaceDirName = ".taskdep"
	dbFileName       = "taskdep.db"
	lockFileName     = "taskdep.lock"
)

var (
	ErrNoWorkspace = errors.New("no .taskdep directory found (run td init)")
	ErrLockBusy    = errors.New("workspace locked by another td process, retry")
)

type GlobalOptions struct {
	JSON  bool
	Dir   string
	Actor string
}

func globalOpts() GlobalOptions {
	return GlobalOptions{JSON: jsonOutput, Dir: dirFlag, Actor: actorFlag}
}

func resolveWorkspace(start string) (string, error) {
	current := start
	for {
		candidate := filepath.Join(current, workspaceDirName)
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return candidate, nil
			}
			return "", fmt.Errorf("%s exists but is not a directory", candidate)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if current == filepath.Dir(current) {
			break
		}
		current = filepath.Dir(current)
	}

	// Allow pointing --dir at the .taskdep directory itself.
	if filepath.Base(start) == workspaceDirName {
		info, err := os.Stat(start)
		if err == nil {
			if info.IsDir() {
				return start, nil
			}
			return "", fmt.Errorf("%s exists but is not a directory", start)
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}

	return "", ErrNoWorkspace
}

func workspaceDir(opts GlobalOptions) (string, error) {
	start := opts.Dir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	return resolveWorkspace(start)
}

// initWorkspace creates root/.taskdep with the database, lock file, activity
// log, and a default config.
func initWorkspace(root string) error {
	dirPath := filepath.Join(root, workspaceDirName)
	if _, err := os.Stat(dirPath); err == nil {
		return fmt.Errorf("already initialized at %s", root)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	// Opening the store creates the database and runs migrations.
	store, err := sqlite.Open(filepath.Join(dirPath, dbFileName))
	if err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		return err
	}

	for _, name := range []string{lockFileName, activity.LogFileName} {
		if err := createEmptyFile(filepath.Join(dirPath, name)); err != nil {
			return err
		}
	}
	return saveConfig(dirPath, Config{})
}

func createEmptyFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// workspace bundles everything a command handler needs: the open store, the
// dependency engine, the permission oracle, and the activity sinks.
type workspace struct {
	dir    string
	actor  string
	store  *sqlite.Store
	engine *depgraph.Engine
	oracle *team.Oracle
	sink   depgraph.ActivitySink
}

func openWorkspace(opts GlobalOptions) (*workspace, error) {
	dir, err := workspaceDir(opts)
	if err != nil {
		return nil, err
	}
	store, err := sqlite.Open(filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, err
	}
	oracle := team.NewOracle(store)
	sink := activity.Tee{
		activity.NewStoreSink(store),
		activity.NewFileLogger(filepath.Join(dir, activity.LogFileName), os.Stderr),
	}
	return &workspace{
		dir:    dir,
		actor:  resolveActor(opts, dir),
		store:  store,
		engine: depgraph.New(store, store, oracle, sink),
		oracle: oracle,
		sink:   sink,
	}, nil
}

func (ws *workspace) Close() error {
	return ws.store.Close()
}

// record emits a CLI-level activity event through the same sinks the engine
// uses. The actor is filled in from the workspace.
func (ws *workspace) record(ctx context.Context, evt depgraph.Event) {
	evt.Actor = ws.actor
	ws.sink.RecordEvent(ctx, evt)
}

// resolveTeamID maps a team id or name to the team id. Empty input stays
// empty (no team scope).
func (ws *workspace) resolveTeamID(ctx context.Context, idOrName string) (string, error) {
	if idOrName == "" {
		return "", nil
	}
	tm, err := ws.store.GetTeam(ctx, idOrName)
	if err != nil {
		return "", err
	}
	return tm.ID, nil
}

// withWorkspace opens the workspace for read-only commands.
func withWorkspace(fn func(ws *workspace) error) error {
	ws, err := openWorkspace(globalOpts())
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(ws)
}

// withWorkspaceLock serializes mutating commands across processes via the
// workspace lock file, then runs fn against an open workspace.
func withWorkspaceLock(fn func(ws *workspace) error) error {
	opts := globalOpts()
	dir, err := workspaceDir(opts)
	if err != nil {
		return err
	}
	return withLock(filepath.Join(dir, lockFileName), func() error {
		ws, err := openWorkspace(opts)
		if err != nil {
			return err
		}
		defer ws.Close()
		return fn(ws)
	})
}
