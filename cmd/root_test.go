package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanmaar/gitpick/internal/git"
	"github.com/evanmaar/gitpick/internal/models"
	"github.com/evanmaar/gitpick/internal/ui"
)

type fakeService struct {
	branches    []models.Branch
	listErr     error
	checkoutErr error

	listCalls  int
	checkedOut []string
}

func (f *fakeService) ListBranches() ([]models.Branch, error) {
	f.listCalls++
	return f.branches, f.listErr
}

func (f *fakeService) Checkout(branch models.Branch) error {
	f.checkedOut = append(f.checkedOut, branch.Name)
	return f.checkoutErr
}

func scriptedSelector(outcome ui.Outcome, err error) (selectorFunc, *[][]models.Branch) {
	var calls [][]models.Branch
	return func(branches []models.Branch) (ui.Outcome, error) {
		calls = append(calls, branches)
		return outcome, err
	}, &calls
}

func someBranches() []models.Branch {
	return []models.Branch{
		{Name: "main", IsCurrent: true},
		{Name: "feature-x"},
		{Name: "origin/feature-y", IsRemote: true},
	}
}

func TestPickConfirmChecksOutExactlyOnce(t *testing.T) {
	svc := &fakeService{branches: someBranches()}
	sel, _ := scriptedSelector(ui.Outcome{Branch: &models.Branch{Name: "feature-x"}}, nil)

	err := pick(svc, sel, false, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"feature-x"}, svc.checkedOut)
}

func TestPickCancelNeverChecksOut(t *testing.T) {
	svc := &fakeService{branches: someBranches()}
	sel, _ := scriptedSelector(ui.Outcome{Cancelled: true}, nil)

	err := pick(svc, sel, false, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, svc.checkedOut)
}

func TestPickListErrorAbortsBeforeSelector(t *testing.T) {
	listErr := &git.NotARepositoryError{Stderr: "fatal: not a git repository\n"}
	svc := &fakeService{listErr: listErr}
	sel, calls := scriptedSelector(ui.Outcome{}, nil)

	err := pick(svc, sel, false, &bytes.Buffer{})
	require.Error(t, err)

	notRepo := &git.NotARepositoryError{}
	assert.ErrorAs(t, err, &notRepo)
	assert.Contains(t, err.Error(), "not a git repository")
	assert.Empty(t, *calls)
	assert.Empty(t, svc.checkedOut)
}

func TestPickGitMissing(t *testing.T) {
	svc := &fakeService{listErr: git.ErrGitMissing}
	sel, calls := scriptedSelector(ui.Outcome{}, nil)

	err := pick(svc, sel, false, &bytes.Buffer{})
	assert.ErrorIs(t, err, git.ErrGitMissing)
	assert.Empty(t, *calls)
}

func TestPickCheckoutErrorPropagates(t *testing.T) {
	svc := &fakeService{
		branches:    someBranches(),
		checkoutErr: &git.CheckoutError{Branch: "feature-x", Stderr: "error: local changes\n"},
	}
	sel, _ := scriptedSelector(ui.Outcome{Branch: &models.Branch{Name: "feature-x"}}, nil)

	err := pick(svc, sel, false, &bytes.Buffer{})
	require.Error(t, err)

	checkoutErr := &git.CheckoutError{}
	assert.ErrorAs(t, err, &checkoutErr)
}

func TestPickSelectorErrorPropagates(t *testing.T) {
	svc := &fakeService{branches: someBranches()}
	sel, _ := scriptedSelector(ui.Outcome{}, errors.New("terminal went away"))

	err := pick(svc, sel, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Empty(t, svc.checkedOut)
}

func TestPickEmptyListingSkipsSelector(t *testing.T) {
	svc := &fakeService{}
	sel, calls := scriptedSelector(ui.Outcome{}, nil)
	var stdout bytes.Buffer

	err := pick(svc, sel, false, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "No branches found.")
	assert.Empty(t, *calls)
}

func TestPickLocalOnlyHidesRemotes(t *testing.T) {
	svc := &fakeService{branches: someBranches()}
	sel, calls := scriptedSelector(ui.Outcome{Cancelled: true}, nil)

	err := pick(svc, sel, true, &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	shown := (*calls)[0]
	require.Len(t, shown, 2)
	for _, b := range shown {
		assert.False(t, b.IsRemote)
	}
}

func TestNewLoggerNopByDefault(t *testing.T) {
	logger, closeLogger, err := newLogger(false)
	require.NoError(t, err)
	defer closeLogger()
	assert.NotNil(t, logger)
}
