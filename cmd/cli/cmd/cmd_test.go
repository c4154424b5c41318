package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "barodeal/internal/errors"
)

// execute runs the root command with args after clearing flag state left
// over from earlier runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	calcRegion, calcDeal, calcProperty = "", "", ""
	calcPrice, calcDeposit, calcRent, calcRate, outputFormat = "", "", "", "", ""
	scheduleRegion, scheduleFormat = "", ""
	replaySections, replayEvents, replayFormat, replayLanding = 0, "", "", true
	verbose, cfgFile = false, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalculateCommand(t *testing.T) {
	out, err := execute(t, "calculate", "--deal", "sale", "--property", "house", "--price", "90,000")
	require.NoError(t, err)
	assert.Contains(t, out, "4,500,000원")
	assert.Contains(t, out, "4,950,000원")
	assert.Contains(t, out, "2,250,000원")
}

func TestCalculateCommandKoreanLabelsAndJSON(t *testing.T) {
	out, err := execute(t, "calculate", "--deal", "월세", "--property", "주택",
		"--deposit", "1,000", "--rent", "50", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		State  string `json:"state"`
		Result struct {
			TransactionAmount string `json:"transactionAmount"`
			Commission        string `json:"commission"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	assert.Equal(t, "computed", doc.State)
	assert.Equal(t, "60000000", doc.Result.TransactionAmount)
	assert.Equal(t, "240000", doc.Result.Commission)
}

func TestCalculateCommandFailure(t *testing.T) {
	out, err := execute(t, "calculate", "--deal", "sale", "--property", "house")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeMissingInput))
	assert.Contains(t, out, "MISSING_INPUT")

	_, err = execute(t, "calculate", "--deal", "sale", "--property", "house", "--price", "1", "--format", "xml")
	assert.Error(t, err)
}

func TestScheduleShowCommand(t *testing.T) {
	out, err := execute(t, "schedule", "show", "--region", "서울")
	require.NoError(t, err)
	assert.Contains(t, out, "seoul/house/sale")
	assert.Contains(t, out, "seoul/non-housing/sale")

	_, err = execute(t, "schedule", "show", "--region", "busan")
	assert.Error(t, err)
}

func TestPagerReplayCommand(t *testing.T) {
	out, err := execute(t, "pager", "replay", "--events", "wheel:120,key:ArrowDown,wait:1000,key:End")
	require.NoError(t, err)
	assert.Contains(t, out, "move-page")
	assert.Contains(t, out, "drop")
	assert.Contains(t, out, "section 7 step 0")

	out, err = execute(t, "pager", "replay", "--landing=false", "--sections", "3",
		"--events", "key:End", "--format", "json")
	require.NoError(t, err)
	var steps []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &steps), out)
	require.Len(t, steps, 1)
	assert.Equal(t, float64(2), steps[0]["status"].(map[string]any)["section"])

	_, err = execute(t, "pager", "replay", "--events", "tap:1")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "barodeal version "+Version)
}
