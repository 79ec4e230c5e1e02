package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonial-go/internal/domain/project"
)

func TestView_PanelsAreMutuallyExclusive(t *testing.T) {
	view := project.NewView(&project.Project{})

	require.NoError(t, view.Open(project.ViewDeliver))
	assert.Equal(t, project.ViewDeliver, view.Mode())

	err := view.Open(project.ViewFindMarkets)
	assert.ErrorIs(t, err, project.ErrInvalidTransition)
	assert.Equal(t, project.ViewDeliver, view.Mode())

	require.NoError(t, view.Open(project.ViewOverview))
	require.NoError(t, view.Open(project.ViewFindMarkets))
	require.NoError(t, view.Open(project.ViewFindMarkets))
}

func TestView_CompletedProjectOnlyAllowsEditing(t *testing.T) {
	view := project.NewView(&project.Project{Complete: true})

	assert.ErrorIs(t, view.Open(project.ViewDeliver), project.ErrInvalidTransition)
	assert.NoError(t, view.Open(project.ViewEditProject))
}

func TestView_RefreshClosesStalePanel(t *testing.T) {
	view := project.NewView(&project.Project{})
	require.NoError(t, view.Open(project.ViewEditCargo))

	view.Refresh(&project.Project{Complete: true})

	assert.Equal(t, project.ViewOverview, view.Mode())
}

func TestViewMode_StringRoundTrip(t *testing.T) {
	for m := project.ViewOverview; m <= project.ViewEditProject; m++ {
		parsed, err := project.ParseViewMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := project.ParseViewMode("settings")
	assert.Error(t, err)
	assert.Equal(t, "ViewMode(42)", project.ViewMode(42).String())
}
