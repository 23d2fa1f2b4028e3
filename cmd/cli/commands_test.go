package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGenerateCommand(t *testing.T) {
	playersFile = writeFile(t, "players.json", `[
		{"id":"a","name":"A","position":"Goalkeeper","rating":70},
		{"id":"b","name":"B","position":"Goalkeeper","rating":60},
		{"id":"c","name":"C","position":"Forward","rating":80},
		{"id":"d","name":"D","position":"Defender","rating":50}
	]`)
	previousFile = ""
	t.Cleanup(func() { playersFile = "" })

	var out bytes.Buffer
	generateCmd.SetOut(&out)
	require.NoError(t, generateCmd.RunE(generateCmd, nil))

	var res balancer.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Len(t, append(res.TeamA, res.TeamB...), 4)
	assert.Equal(t, 260, res.Stats.PowerA+res.Stats.PowerB)
	assert.Equal(t, 1, res.Attempts)
}

func TestGenerateCommand_Errors(t *testing.T) {
	t.Cleanup(func() { playersFile, previousFile = "", "" })

	playersFile = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, generateCmd.RunE(generateCmd, nil))

	playersFile = writeFile(t, "one.json", `[{"id":"a","name":"A","position":"Forward","rating":70}]`)
	assert.ErrorIs(t, generateCmd.RunE(generateCmd, nil), balancer.ErrInsufficientPlayers)

	playersFile = writeFile(t, "two.json", `[{"id":"a","name":"A","position":"Forward","rating":70},{"id":"b","name":"B","position":"Forward","rating":70}]`)
	previousFile = writeFile(t, "prev.json", `{"teamA":`)
	assert.Error(t, generateCmd.RunE(generateCmd, nil))
}
