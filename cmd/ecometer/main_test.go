package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecometer/ecometer/internal/cli"
)

func TestRootCommand(t *testing.T) {
	root := cli.NewRootCmd(version)
	assert.NotNil(t, root)
	assert.Equal(t, "ecometer", root.Use)
	assert.Equal(t, version, root.Version)
}
