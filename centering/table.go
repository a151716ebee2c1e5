package centering

// Reciprocal-space transforms. Row i gives the i-th primitive reciprocal
// basis vector in units of a*, b*, c*. Each is the inverse transpose of the
// matching entry in primitives, so every entry is an integer matrix.
var transforms = map[Symbol][3][3]float64{
	P:  {{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	A:  {{1, 0, 0}, {0, 1, -1}, {0, 1, 1}},
	C:  {{1, -1, 0}, {1, 1, 0}, {0, 0, 1}},
	F:  {{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}},
	I:  {{0, 1, 1}, {1, 0, 1}, {1, 1, 0}},
	R:  {{1, 0, 1}, {-1, 1, 1}, {0, -1, 1}},
	Fc: {{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}},
	Ic: {{0, 1, 1}, {1, 0, 1}, {1, 1, 0}},
}

// Direct-space primitive cells in units of a, b, c. R uses the obverse
// setting of the hexagonal cell.
var primitives = map[Symbol][3][3]float64{
	P:  {{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	A:  {{1, 0, 0}, {0, 0.5, -0.5}, {0, 0.5, 0.5}},
	C:  {{0.5, -0.5, 0}, {0.5, 0.5, 0}, {0, 0, 1}},
	F:  {{0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
	I:  {{-0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, -0.5}},
	R:  {{2.0 / 3, 1.0 / 3, 1.0 / 3}, {-1.0 / 3, 1.0 / 3, 1.0 / 3}, {-1.0 / 3, -2.0 / 3, 1.0 / 3}},
	Fc: {{0, 0.5, 0.5}, {0.5, 0, 0.5}, {0.5, 0.5, 0}},
	Ic: {{-0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, -0.5}},
}

// Space groups with a non-primitive centering, by the first letter of their
// Hermann-Mauguin symbol. Cubic F and I groups are listed separately.
var centeredGroups = map[Symbol][]int{
	A: {38, 39, 40, 41},
	C: {5, 8, 9, 12, 15, 20, 21, 35, 36, 37, 63, 64, 65, 66, 67, 68},
	F: {22, 42, 43, 69, 70},
	I: {
		23, 24, 44, 45, 46, 71, 72, 73, 74,
		79, 80, 82, 87, 88, 97, 98, 107, 108, 109, 110,
		119, 120, 121, 122, 139, 140, 141, 142,
	},
	R:  {146, 148, 155, 160, 161, 166, 167},
	Fc: {196, 202, 203, 209, 210, 216, 219, 225, 226, 227, 228},
	Ic: {197, 199, 204, 206, 211, 214, 217, 220, 229, 230},
}

// spaceGroups[n] is the centering of space group n. Index 0 is unused.
var spaceGroups = buildSpaceGroupTable()

func buildSpaceGroupTable() [231]Symbol {
	var table [231]Symbol
	for i := range table {
		table[i] = P
	}
	for sym, groups := range centeredGroups {
		for _, n := range groups {
			if table[n] != P {
				panic("space group listed under two centerings")
			}
			table[n] = sym
		}
	}
	return table
}
