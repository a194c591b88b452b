package main

import (
	"context"
	"strings"
	"testing"

	"github.com/joboy-dev/portfolio.api/internal/testutil"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const profileYAML = `
first_name: Jane
last_name: Doe
email: jane@example.com
title: Backend Engineer
image_url: https://cdn.example.com/jane.png
interests:
  - distributed systems
  - climbing
`

func TestReadProfileSeed(t *testing.T) {
	values, err := readProfileSeed(strings.NewReader(profileYAML))
	require.NoError(t, err)
	assert.Equal(t, "Jane", values["first_name"])
	assert.Len(t, values["interests"], 2)

	_, err = readProfileSeed(strings.NewReader(""))
	assert.Error(t, err)
}

func TestSeedProfile_CreatesThenUpdates(t *testing.T) {
	env := testutil.NewEnv(t)
	repos := env.Repos
	profiles := usecase.NewProfileUseCase(zap.NewNop(), repos.Transactor, repos.Profile, repos.Project, repos.Skill, nil)
	ctx := context.Background()

	values, err := readProfileSeed(strings.NewReader(profileYAML))
	require.NoError(t, err)

	created, err := seedProfile(ctx, profiles, values)
	require.NoError(t, err)
	assert.True(t, created)

	view, err := profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", view.FullName)
	assert.JSONEq(t, `["distributed systems","climbing"]`, string(view.Interests))

	update, err := readProfileSeed(strings.NewReader("title: Staff Engineer\nhobbies: [chess]\n"))
	require.NoError(t, err)

	created, err = seedProfile(ctx, profiles, update)
	require.NoError(t, err)
	assert.False(t, created)

	view, err = profiles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", view.Title)
	assert.Equal(t, "Jane", view.FirstName)
	assert.JSONEq(t, `["chess"]`, string(view.Hobbies))
}
