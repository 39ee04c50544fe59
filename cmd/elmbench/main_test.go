package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

func TestParseHidden(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "10,20,30", want: []int{10, 20, 30}},
		{in: " 5 , 7,", want: []int{5, 7}},
		{in: "", want: nil},
		{in: "10,x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseHidden(tt.in)
			if tt.wantErr {
				var ve *errors.ValidationError
				assert.True(t, errors.As(err, &ve))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitCSVArg(t *testing.T) {
	tests := []struct {
		arg      string
		wantPath string
		wantCol  int
	}{
		{"iris.csv", "iris.csv", -1},
		{"iris.csv:4", "iris.csv", 4},
		{"data/iris.csv:0", "data/iris.csv", 0},
		{`C:\data\iris.csv`, `C:\data\iris.csv`, -1},
		{"odd:name.csv", "odd:name.csv", -1},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			path, col := splitCSVArg(tt.arg)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantCol, col)
		})
	}
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-hidden", "4,8", "-repeats", "2", "-csv", "a.csv:1", "-csv", "b.csv", "-scale", "minmax"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, opts.cfg.HiddenSizes)
	assert.Equal(t, 2, opts.cfg.Repeats)
	assert.Equal(t, 5, opts.cfg.Folds)
	assert.Equal(t, "minmax", opts.cfg.Scaling)
	assert.Equal(t, stringList{"a.csv:1", "b.csv"}, opts.csv)

	_, err = parseFlags([]string{"extra"}, io.Discard)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-unknown"}, io.Discard)
	assert.Error(t, err)
}

func TestLoadDatasets(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "toy.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("c,f1,f2\n1,0,1\n2,1,0\n1,0,2\n2,2,0\n"), 0o600))
	svmPath := filepath.Join(dir, "toy2.svm")
	require.NoError(t, os.WriteFile(svmPath, []byte("1 1:0.5\n-1 2:1\n"), 0o600))

	opts, err := parseFlags([]string{"-csv", csvPath + ":0", "-svmlight", svmPath}, io.Discard)
	require.NoError(t, err)
	sets, err := loadDatasets(opts)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "toy", sets[0].Name)
	assert.Equal(t, []float64{1, 2}, sets[0].Classes())
	assert.Equal(t, "toy2", sets[1].Name)

	opts, err = parseFlags(nil, io.Discard)
	require.NoError(t, err)
	sets, err = loadDatasets(opts)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "blobs-binary", sets[0].Name)
	assert.Equal(t, "blobs-3class", sets[1].Name)
}

func TestRun(t *testing.T) {
	plotPath := filepath.Join(t.TempDir(), "acc.svg")
	var out bytes.Buffer
	err := run(context.Background(), []string{
		"-hidden", "5", "-repeats", "1", "-folds", "3", "-seed", "2",
		"-text", "-plot", plotPath, "-log-level", "error",
	}, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "blobs-binary\n5 Accuracy: ")
	assert.Contains(t, out.String(), "blobs-3class\n5 Accuracy: ")
	_, err = os.Stat(plotPath)
	assert.NoError(t, err)

	err = run(context.Background(), []string{"-folds", "1", "-log-level", "error"}, &out)
	var ve *errors.ValidationError
	assert.True(t, errors.As(err, &ve))
}
