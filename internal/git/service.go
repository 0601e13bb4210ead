package git

import (
	"go.uber.org/zap"

	"github.com/evanmaar/gitpick/internal/models"
)

// Service is the tool's entire surface against git: one read, one write.
// Tests substitute a recording fake; nothing outside this package touches
// os/exec.
type Service interface {
	// ListBranches enumerates local and remote-tracking branches in the
	// order git reports them. It never fetches.
	ListBranches() ([]models.Branch, error)

	// Checkout switches the work tree to the given branch. For a
	// remote-tracking entry it creates a local tracking branch.
	Checkout(branch models.Branch) error
}

// CLI runs the real git (and, opportunistically, gh) binaries.
type CLI struct {
	logger *zap.Logger
}

// NewCLI returns a Service backed by the git command line tool. Pass
// zap.NewNop() when debug logging is off.
func NewCLI(logger *zap.Logger) *CLI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLI{logger: logger}
}
