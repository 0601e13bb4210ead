package git

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/evanmaar/gitpick/internal/models"
)

// ListBranches returns all local and remote-tracking branches with their info.
func (c *CLI) ListBranches() ([]models.Branch, error) {
	cmd := exec.Command("git", "branch", "-vv", "--all", "--no-color")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("running git", zap.Strings("args", cmd.Args[1:]))

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrGitMissing
		}
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			c.logger.Debug("git branch failed",
				zap.Int("exit_code", exitErr.ExitCode()),
				zap.String("stderr", stderr.String()))
			return nil, &NotARepositoryError{Stderr: stderr.String()}
		}
		return nil, err
	}

	branches, err := parseBranches(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	if prs := c.openPRNumbers(); len(prs) > 0 {
		for i := range branches {
			branches[i].PRNumber = prs[branches[i].Name]
		}
	}

	c.logger.Debug("listed branches", zap.Int("count", len(branches)))
	return branches, nil
}

// parseBranches turns `git branch -vv --all` output into branch records.
// Order is preserved as git printed it.
func parseBranches(output []byte) ([]models.Branch, error) {
	var branches []models.Branch
	scanner := bufio.NewScanner(bytes.NewReader(output))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		branch := models.Branch{}

		// Current branch is marked with *
		marked := strings.HasPrefix(line, "*")
		if marked {
			branch.IsCurrent = true
			line = strings.TrimPrefix(line, "*")
		}
		line = strings.TrimSpace(line)

		// Detached HEAD renders as "* (HEAD detached at abc1234)". Keep it
		// as a synthetic record; the selector refuses to check it out.
		if marked && strings.HasPrefix(line, "(") {
			end := strings.Index(line, ")")
			if end < 0 {
				return nil, &ParseError{Line: line}
			}
			branch.Detached = true
			branch.Name = line[:end+1]
			rest := strings.TrimSpace(line[end+1:])
			if fields := strings.Fields(rest); len(fields) > 0 {
				branch.Hash = fields[0]
				branch.LastCommit = strings.TrimSpace(strings.TrimPrefix(rest, branch.Hash))
			}
			branches = append(branches, branch)
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 || parts[0] == "" {
			return nil, &ParseError{Line: line}
		}

		// Symbolic refs like "remotes/origin/HEAD -> origin/main" are not
		// branches.
		if len(parts) > 1 && parts[1] == "->" {
			continue
		}

		branch.Name = parts[0]
		if strings.HasPrefix(branch.Name, "remotes/") {
			branch.IsRemote = true
			branch.Name = strings.TrimPrefix(branch.Name, "remotes/")
		} else if isRemoteName(branch.Name) {
			branch.IsRemote = true
		}

		if len(parts) > 1 {
			branch.Hash = parts[1]
		}

		// Upstream info renders as [origin/main] or [origin/main: ahead 2]
		if len(parts) > 2 && strings.HasPrefix(parts[2], "[") {
			branch.Upstream = extractUpstreamInfo(line)
		}

		// Commit subject is everything after hash and upstream
		if branch.Hash != "" {
			messageStart := strings.Index(line, branch.Hash) + len(branch.Hash)
			if messageStart < len(line) {
				message := line[messageStart:]
				if idx := strings.Index(message, "]"); idx > 0 && strings.Contains(message[:idx], "[") {
					message = message[idx+1:]
				}
				branch.LastCommit = strings.TrimSpace(message)
			}
		}

		branches = append(branches, branch)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return branches, nil
}

// isRemoteName reports whether a short ref name denotes a remote-tracking
// branch by its leading segment. Listing output normally carries the
// "remotes/" prefix, but plain "origin/..." names are classified too.
func isRemoteName(name string) bool {
	remote, _, found := strings.Cut(name, "/")
	return found && remote == "origin"
}

func extractUpstreamInfo(line string) string {
	start := strings.Index(line, "[")
	end := strings.Index(line, "]")
	if start >= 0 && end > start {
		return line[start+1 : end]
	}
	return ""
}

// Checkout switches to the given branch. Output is inherited so git's own
// progress and diagnostics land on the user's terminal; stderr is also
// captured for the error value.
func (c *CLI) Checkout(branch models.Branch) error {
	args := []string{"checkout", branch.Name}
	if branch.IsRemote {
		// Creates a local branch tracking the remote one.
		args = []string{"checkout", "--track", branch.Name}
	}

	cmd := exec.Command("git", args...)
	var stderr bytes.Buffer
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderr)

	c.logger.Debug("running git", zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrGitMissing
		}
		c.logger.Debug("checkout failed", zap.String("branch", branch.Name), zap.Error(err))
		return &CheckoutError{Branch: branch.Name, Stderr: stderr.String()}
	}

	c.logger.Debug("checked out", zap.String("branch", branch.Name))
	return nil
}
