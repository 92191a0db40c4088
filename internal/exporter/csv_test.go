package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_Append(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}},
	}))
	require.NoError(t, w.WriteCSV("out.csv", WriteOptions{
		Records: [][]string{{"3", "4"}},
		Append:  true,
	}))

	rows := readBack(t, filepath.Join(dir, "out.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestWriteCSV_CreatesSubdirectory(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteCSV(filepath.Join("monthly", "out.csv"), WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	}))

	_, err := os.Stat(filepath.Join(dir, "monthly", "out.csv"))
	assert.NoError(t, err)
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	sw, err := w.CreateStreamWriter("stream.csv", []string{"id", "name"})
	require.NoError(t, err)
	require.NoError(t, sw.WriteRecord([]string{"1", "Jane"}))
	require.NoError(t, sw.WriteRecord([]string{"2", "Budi"}))
	require.NoError(t, sw.Close())

	rows := readBack(t, filepath.Join(dir, "stream.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "name"}, rows[0])
	assert.Equal(t, []string{"2", "Budi"}, rows[2])
}
