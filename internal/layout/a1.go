package layout

import "strconv"

// ColumnLetter converts a 1-based column index to its A1 letter form using
// bijective base-26 numbering: 1 -> A, 26 -> Z, 27 -> AA.
func ColumnLetter(col int) string {
	var buf []byte
	for col > 0 {
		col--
		buf = append(buf, byte('A'+col%26))
		col /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// CellRef builds an A1 reference from 1-based coordinates.
func CellRef(col, row int) string {
	return ColumnLetter(col) + strconv.Itoa(row)
}
