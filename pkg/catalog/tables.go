package catalog

// Classic Taguchi tables, zero-based level indices.

var tableL4 = [][]int{
	{0, 0, 0},
	{0, 1, 1},
	{1, 0, 1},
	{1, 1, 0},
}

var tableL8 = [][]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1},
	{0, 1, 1, 0, 0, 1, 1},
	{0, 1, 1, 1, 1, 0, 0},
	{1, 0, 1, 0, 1, 0, 1},
	{1, 0, 1, 1, 0, 1, 0},
	{1, 1, 0, 0, 1, 1, 0},
	{1, 1, 0, 1, 0, 0, 1},
}

var tableL9 = [][]int{
	{0, 0, 0, 0},
	{0, 1, 1, 1},
	{0, 2, 2, 2},
	{1, 0, 1, 2},
	{1, 1, 2, 0},
	{1, 2, 0, 1},
	{2, 0, 2, 1},
	{2, 1, 0, 2},
	{2, 2, 1, 0},
}

// tableL18 keeps columns 2-8 of the mixed L18 (2^1 x 3^7); dropping the
// two-level column leaves a homogeneous three-level array.
var tableL18 = [][]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 1, 1},
	{0, 2, 2, 2, 2, 2, 2},
	{1, 0, 0, 1, 1, 2, 2},
	{1, 1, 1, 2, 2, 0, 0},
	{1, 2, 2, 0, 0, 1, 1},
	{2, 0, 1, 0, 2, 1, 2},
	{2, 1, 2, 1, 0, 2, 0},
	{2, 2, 0, 2, 1, 0, 1},
	{0, 0, 2, 2, 1, 1, 0},
	{0, 1, 0, 0, 2, 2, 1},
	{0, 2, 1, 1, 0, 0, 2},
	{1, 0, 1, 2, 0, 2, 1},
	{1, 1, 2, 0, 1, 0, 2},
	{1, 2, 0, 1, 2, 1, 0},
	{2, 0, 2, 1, 2, 0, 1},
	{2, 1, 0, 2, 0, 1, 2},
	{2, 2, 1, 0, 1, 2, 0},
}
