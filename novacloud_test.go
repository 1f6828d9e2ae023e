package novacloud

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novacloud/internal/table"
	"github.com/tuannm99/novacloud/internal/textcloud"
)

func makeCloud(t *testing.T) *Table {
	t.Helper()
	tb := NewTable()
	require.NoError(t, tb.Add("x", []float32{0, 1, -1.5}))
	require.NoError(t, tb.Add("y", []float32{0, 2, 2.5}))
	require.NoError(t, tb.Add("z", []float32{0, 3, 0}))
	require.NoError(t, tb.Add("intensity", []uint16{10, 20, 30}))
	return tb
}

func TestWriteReadPLY(t *testing.T) {
	tb := makeCloud(t)

	for _, tc := range []struct {
		ascii bool
		order string
	}{{false, "<"}, {false, ">"}, {true, "<"}} {
		path, err := WritePLY(filepath.Join(t.TempDir(), "scan"), tb, nil, tc.ascii, tc.order)
		require.NoError(t, err)
		require.Equal(t, ".ply", filepath.Ext(path))

		got, err := ReadPLY(path, []string{"x", "y"}, true)
		require.NoError(t, err)
		require.Equal(t, []string{"x", "y"}, got.Names())

		ys, err := table.Values[float32](got, "y")
		require.NoError(t, err)
		require.Equal(t, []float32{0, 2, 2.5}, ys)
	}
}

func TestReadPLY_Strict(t *testing.T) {
	path, err := WritePLY(filepath.Join(t.TempDir(), "scan.ply"), makeCloud(t), []string{"x", "y", "z"}, false, "<")
	require.NoError(t, err)

	_, err = ReadPLY(path, []string{"x", "intensity"}, false)
	require.ErrorIs(t, err, ErrMissingField)

	got, err := ReadPLY(path, []string{"x", "intensity"}, true)
	require.NoError(t, err)
	require.Equal(t, []string{"x"}, got.Names())
}

func TestWritePLY_BadByteOrder(t *testing.T) {
	_, err := WritePLY(filepath.Join(t.TempDir(), "scan"), makeCloud(t), nil, false, "big")
	require.Error(t, err)
}

func TestTextRoundTrip(t *testing.T) {
	dir := t.TempDir()
	opts := textcloud.DefaultOptions()

	written, err := WriteText(filepath.Join(dir, "pts.csv"), makeCloud(t), nil, opts)
	require.NoError(t, err)

	got, err := ReadText(written[0], []string{"x", "y", "z", "intensity"}, opts)
	require.NoError(t, err)
	zs, err := table.Values[float64](got, "z")
	require.NoError(t, err)
	require.Equal(t, []float64{0, 3, 0}, zs)

	_, err = ReadText(written[0], []string{"a", "b", "c", "d"}, opts)
	require.ErrorIs(t, err, ErrMissingCoordinates)
}
