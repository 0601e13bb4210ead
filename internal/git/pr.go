package git

import (
	"encoding/json"
	"os/exec"

	"go.uber.org/zap"
)

type pullRequest struct {
	HeadRefName string `json:"headRefName"`
	Number      int    `json:"number"`
}

// openPRNumbers maps branch head names to open pull request numbers using
// the gh CLI. Strictly best effort: no gh, no GitHub remote, or bad output
// all degrade to an empty map.
func (c *CLI) openPRNumbers() map[string]int {
	if _, err := exec.LookPath("gh"); err != nil {
		return nil
	}

	cmd := exec.Command("gh", "pr", "list", "--json", "headRefName,number", "--limit", "1000")
	output, err := cmd.Output()
	if err != nil {
		c.logger.Debug("gh pr list failed", zap.Error(err))
		return nil
	}

	var prs []pullRequest
	if err := json.Unmarshal(output, &prs); err != nil {
		c.logger.Debug("gh pr list output not parseable", zap.Error(err))
		return nil
	}

	numbers := make(map[string]int, len(prs))
	for _, pr := range prs {
		numbers[pr.HeadRefName] = pr.Number
	}
	return numbers
}
