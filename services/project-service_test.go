package services

import (
	"testing"

	"github.com/Chandanpatidar24/Project-Management/models"

	"github.com/stretchr/testify/assert"
)

func TestApplyProjectPatch(t *testing.T) {
	project := &models.Project{
		Title:       "Old title",
		Description: "Old description",
		Deadline:    "2026-09-01",
	}

	applyProjectPatch(project, ProjectPatch{Title: "New title"})

	assert.Equal(t, "New title", project.Title)
	assert.Equal(t, "Old description", project.Description)
	assert.Equal(t, "2026-09-01", project.Deadline)
}

func TestApplyProjectPatchEmptyStringIgnored(t *testing.T) {
	// Regression for the falsy-patch rule: an empty string never clears a
	// project field.
	project := &models.Project{
		Title:       "Old title",
		Description: "Old description",
		Deadline:    "2026-09-01",
	}

	applyProjectPatch(project, ProjectPatch{Description: ""})

	assert.Equal(t, "Old description", project.Description)
}
