package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRunner executes git commands.
type GitRunner interface {
	Run(args []string) ([]byte, error)
}

type execGitRunner struct{}

func (execGitRunner) Run(args []string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

var defaultGitRunner GitRunner = execGitRunner{}

// Resolve ensures the model repository is available locally and returns
// its directory. Remote sources are cloned into cacheDir and reused on
// later calls; use Invalidate to force a fresh clone. Absolute local paths
// are validated and returned as-is.
func Resolve(src Source, cacheDir string) (string, error) {
	return resolveWithRunner(src, cacheDir, defaultGitRunner)
}

func resolveWithRunner(src Source, cacheDir string, runner GitRunner) (string, error) {
	repo := strings.TrimSpace(src.Repository)
	if repo == "" {
		return "", errors.New("model repository is required")
	}

	if filepath.IsAbs(repo) {
		return validateLocalDir(repo)
	}

	if strings.TrimSpace(cacheDir) == "" {
		return "", errors.New("cache directory is required")
	}

	remote, err := normalizeRepository(repo)
	if err != nil {
		return "", fmt.Errorf("model repository: %w", err)
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory %s: %w", cacheDir, err)
	}

	repoDir := filepath.Join(cacheDir, cacheKey(remote))
	sha := strings.TrimSpace(src.CommitSHA)

	if err := ensureRepoCached(remote, repoDir, sha, runner); err != nil {
		return "", err
	}

	if sha == "" {
		return repoDir, nil
	}

	if err := ensurePinnedCommit(repoDir, remote, sha, runner); err != nil {
		return "", err
	}
	if _, err := runner.Run([]string{
		"-C", repoDir, "checkout", "--detach", "--force", sha,
	}); err != nil {
		return "", fmt.Errorf("checkout model commit %s: %w", sha, err)
	}
	return repoDir, nil
}

// Invalidate removes the cached clone for src so the next Resolve fetches
// it anew. Local path sources are never touched.
func Invalidate(src Source, cacheDir string) error {
	repo := strings.TrimSpace(src.Repository)
	if repo == "" || filepath.IsAbs(repo) {
		return nil
	}
	remote, err := normalizeRepository(repo)
	if err != nil {
		return fmt.Errorf("model repository: %w", err)
	}
	repoDir := filepath.Join(cacheDir, cacheKey(remote))
	if err := os.RemoveAll(repoDir); err != nil {
		return fmt.Errorf("remove cached model %s: %w", repoDir, err)
	}
	return nil
}

// CachePath reports where src is (or would be) resolved and whether a
// usable copy already exists there.
func CachePath(src Source, cacheDir string) (string, bool) {
	repo := strings.TrimSpace(src.Repository)
	if repo == "" {
		return "", false
	}
	if filepath.IsAbs(repo) {
		_, err := os.Stat(repo)
		return filepath.Clean(repo), err == nil
	}
	remote, err := normalizeRepository(repo)
	if err != nil {
		return "", false
	}
	repoDir := filepath.Join(cacheDir, cacheKey(remote))
	_, statErr := os.Stat(filepath.Join(repoDir, ".git"))
	return repoDir, statErr == nil
}

func validateLocalDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("local model path does not exist: %s", path)
		}
		return "", fmt.Errorf("stat local model path: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("local model path is not a directory: %s", path)
	}
	return filepath.Clean(path), nil
}

func ensureRepoCached(remote, repoDir, sha string, runner GitRunner) error {
	if _, err := os.Stat(filepath.Join(repoDir, ".git")); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat cached model repo: %w", err)
	}

	args := []string{"clone", remote, repoDir}
	if sha != "" {
		// The pinned commit is checked out explicitly afterwards.
		args = []string{"clone", "--no-checkout", remote, repoDir}
	}
	if _, runErr := runner.Run(args); runErr != nil {
		return fmt.Errorf("clone model repository: %w", classifyGitError(runErr, remote, sha))
	}
	return nil
}

func ensurePinnedCommit(repoDir, remote, sha string, runner GitRunner) error {
	if cachedCommitExists(repoDir, sha, runner) {
		return nil
	}
	if _, runErr := runner.Run([]string{
		"-C", repoDir, "fetch", "--depth", "1", "origin", sha,
	}); runErr != nil {
		return fmt.Errorf("fetch model commit %s: %w", sha, classifyGitError(runErr, remote, sha))
	}
	return nil
}

func cacheKey(remote string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(remote))))
	return hex.EncodeToString(sum[:8])
}

func normalizeRepository(repository string) (string, error) {
	repo := strings.TrimSpace(repository)
	if repo == "" {
		return "", errors.New("repository is required")
	}

	switch {
	case strings.HasPrefix(repo, "git@"):
		return repo, nil
	case strings.HasPrefix(repo, "ssh://"), strings.HasPrefix(repo, "file://"):
		return repo, nil
	case strings.HasPrefix(repo, "http://"), strings.HasPrefix(repo, "https://"):
		trimmed := strings.TrimRight(repo, "/")
		if strings.HasSuffix(trimmed, ".git") {
			return trimmed, nil
		}
		return trimmed + ".git", nil
	case strings.HasPrefix(repo, "github.com/"):
		return "https://" + strings.TrimRight(repo, "/") + ".git", nil
	default:
		if strings.Contains(repo, "/") && !strings.HasPrefix(repo, ".") {
			return "https://github.com/" + strings.Trim(repo, "/") + ".git", nil
		}
		return repo, nil
	}
}

func cachedCommitExists(repoDir, sha string, runner GitRunner) bool {
	_, err := runner.Run([]string{"-C", repoDir, "cat-file", "-e", sha + "^{commit}"})
	return err == nil
}

func classifyGitError(err error, remote, sha string) error {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "repository not found"),
		strings.Contains(text, "could not read from remote repository"):
		return fmt.Errorf("repository not found or inaccessible: %s", remote)
	case strings.Contains(text, "couldn't find remote ref"),
		strings.Contains(text, "not our ref"):
		return fmt.Errorf("commit not found: %s", sha)
	case strings.Contains(text, "failed to connect"),
		strings.Contains(text, "timed out"),
		strings.Contains(text, "could not resolve host"):
		return fmt.Errorf("network error while accessing %s", remote)
	default:
		return err
	}
}
