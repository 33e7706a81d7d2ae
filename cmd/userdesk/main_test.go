package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	icmd "userdesk/internal/client/cmd"
	"userdesk/internal/client/controller"
)

func TestVersionCommand(t *testing.T) {
	root := icmd.NewRootCmd("1.2.3", "2026-10-19")
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "userdesk 1.2.3 (2026-10-19)\n", buf.String())
}

func TestReported(t *testing.T) {
	opErr := &controller.OperationError{Op: controller.OpList, Phrase: controller.PhraseLoad, Err: errors.New("refused")}
	assert.True(t, reported(opErr))
	assert.True(t, reported(fmt.Errorf("users list: %w", opErr)))
	assert.False(t, reported(errors.New("invalid user id")))
}
