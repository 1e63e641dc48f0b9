package catalog

import "fmt"

// field is a finite field GF(q) given by its addition and multiplication
// tables over the element indices 0..q-1.
type field struct {
	order int
	add   [][]int
	mul   [][]int
}

// gf4Mul is multiplication in GF(2)[x]/(x²+x+1) with elements 0, 1, x, x+1
// encoded as 0..3. Addition is XOR.
var gf4Mul = [4][4]int{
	{0, 0, 0, 0},
	{0, 1, 2, 3},
	{0, 2, 3, 1},
	{0, 3, 1, 2},
}

func newField(q int) (field, error) {
	f := field{order: q, add: square(q), mul: square(q)}
	switch {
	case q == 4:
		for a := 0; a < q; a++ {
			for b := 0; b < q; b++ {
				f.add[a][b] = a ^ b
				f.mul[a][b] = gf4Mul[a][b]
			}
		}
	case isPrime(q):
		for a := 0; a < q; a++ {
			for b := 0; b < q; b++ {
				f.add[a][b] = (a + b) % q
				f.mul[a][b] = (a * b) % q
			}
		}
	default:
		return field{}, fmt.Errorf("catalog: GF(%d) is not supported", q)
	}
	return f, nil
}

// powerArray builds the L(q^n) array: rows enumerate GF(q)^n, columns are the
// canonical non-zero vectors (leading component 1) with unit vectors first,
// and each cell is the dot product of row and column vectors.
func powerArray(q, n int) ([][]uint8, error) {
	f, err := newField(q)
	if err != nil {
		return nil, err
	}
	runs := 1
	for i := 0; i < n; i++ {
		runs *= q
	}

	vectors := make([][]int, 0, (runs-1)/(q-1))
	for i := 0; i < n; i++ {
		unit := make([]int, n)
		unit[i] = 1
		vectors = append(vectors, unit)
	}
	for v := 1; v < runs; v++ {
		vec := digits(v, q, n)
		if !canonical(vec) || nonZero(vec) < 2 {
			continue
		}
		vectors = append(vectors, vec)
	}

	rows := make([][]uint8, runs)
	for r := 0; r < runs; r++ {
		x := digits(r, q, n)
		row := make([]uint8, len(vectors))
		for c, vec := range vectors {
			acc := 0
			for k := 0; k < n; k++ {
				acc = f.add[acc][f.mul[vec[k]][x[k]]]
			}
			row[c] = uint8(acc)
		}
		rows[r] = row
	}
	return rows, nil
}

// digits writes v in base q as n digits, most significant first.
func digits(v, q, n int) []int {
	out := make([]int, n)
	for k := n - 1; k >= 0; k-- {
		out[k] = v % q
		v /= q
	}
	return out
}

func canonical(vec []int) bool {
	for _, x := range vec {
		if x != 0 {
			return x == 1
		}
	}
	return false
}

func nonZero(vec []int) int {
	n := 0
	for _, x := range vec {
		if x != 0 {
			n++
		}
	}
	return n
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func square(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = make([]int, n)
	}
	return out
}
