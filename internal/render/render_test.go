package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func TestRender(t *testing.T) {
	b, err := mines.NewWithMines(3, []mines.Point{{Row: 1, Col: 1}})
	require.NoError(t, err)

	want := "   0  1  2  \n" +
		"-------------\n" +
		"0 |  |  |  |\n" +
		"1 |  |  |  |\n" +
		"2 |  |  |  |\n" +
		"-------------"
	assert.Equal(t, want, Render(b.Snapshot()))

	_, err = b.Reveal(0, 0)
	require.NoError(t, err)

	want = "   0  1  2  \n" +
		"-------------\n" +
		"0 |1 |  |  |\n" +
		"1 |  |  |  |\n" +
		"2 |  |  |  |\n" +
		"-------------"
	assert.Equal(t, want, Render(b.Snapshot()))

	want = "   0  1  2  \n" +
		"-------------\n" +
		"0 |1 |1 |1 |\n" +
		"1 |1 |* |1 |\n" +
		"2 |1 |1 |1 |\n" +
		"-------------"
	assert.Equal(t, want, Render(b.Snapshot().RevealAll()))
}

func TestRenderSingleCell(t *testing.T) {
	b, err := mines.NewWithMines(1, nil)
	require.NoError(t, err)
	_, err = b.Reveal(0, 0)
	require.NoError(t, err)

	assert.Equal(t, "   0  \n-------\n0 |0 |\n-------", Render(b.Snapshot()))
}

func TestRenderAlignsWideBoards(t *testing.T) {
	b, err := mines.NewWithMines(12, []mines.Point{{Row: 11, Col: 11}})
	require.NoError(t, err)
	_, err = b.Reveal(0, 0)
	require.NoError(t, err)

	lines := strings.Split(Render(b.Snapshot()), "\n")
	require.Len(t, lines, 12+3)

	assert.True(t, strings.HasPrefix(lines[0], "    0  1"))
	assert.True(t, strings.HasSuffix(lines[0], "10  11  "))
	assert.True(t, strings.HasPrefix(lines[2], " 0 |0 "))
	assert.True(t, strings.HasPrefix(lines[13], "11 |"))

	rowLen := len(lines[2])
	for _, line := range lines[2:14] {
		assert.Len(t, line, rowLen)
	}
	assert.Equal(t, strings.Repeat("-", rowLen+1), lines[1])
	assert.Equal(t, lines[1], lines[14])
}
