package testhelpers

import (
	"testing"
)

// Scene is a test fixture: a temporary directory holding a real git
// repository. Operations take explicit paths, so no directory changing is
// needed and scenes are safe under t.Parallel().
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup is a function type for preparing a scene
type SceneSetup func(*Scene) error

// NewScene creates a scene with a fresh repository in t.TempDir()
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir := t.TempDir()
	repo, err := NewGitRepo(dir)
	if err != nil {
		t.Fatalf("failed to create git repo: %v", err)
	}

	scene := &Scene{Dir: dir, Repo: repo}

	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("scene setup failed: %v", err)
		}
	}
	return scene
}

// BasicSceneSetup creates a scene with a single commit
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
