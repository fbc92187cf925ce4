package csvsink_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/opensample/mhchain/record"
	"github.com/opensample/mhchain/record/csvsink"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.csv")

	sink, err := csvsink.Open(path, 2, true)
	require.NoError(t, err)

	require.NoError(t, sink.Append(record.Record{
		RunID: "run-1", Seq: 0, LogLikelihood: -1.5,
		Accepted: []float64{0.1, 0.2}, AcceptedFlag: true,
		Step: []float64{0.01, -0.02},
	}))
	require.NoError(t, sink.Append(record.Record{
		RunID: "run-1", Seq: 1, LogLikelihood: -1.5,
		Accepted: []float64{0.1, 0.2}, AcceptedFlag: false,
	}))
	require.NoError(t, sink.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records

	require.Equal(t, []string{
		"run_id", "seq", "log_likelihood", "accepted_flag",
		"accepted_0", "accepted_1", "step_0", "step_1",
	}, rows[0])
	require.Equal(t, "run-1", rows[1][0])
	require.Equal(t, "true", rows[1][3])
	require.Equal(t, "", rows[2][6]) // no step recorded on the second row
}

func TestOpenRejectsNonPositiveDim(t *testing.T) {
	_, err := csvsink.Open(filepath.Join(t.TempDir(), "x.csv"), 0, false)
	require.Error(t, err)
}
