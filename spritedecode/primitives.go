// Package spritedecode implements the six custom tile-primitive encodings
// (Square, TransparentSquare, {Left,Right}Triangle, {Left,Right}Trapezoid)
// and renders them through nine compile-time specializations (3
// transparency modes x 3 light modes), using Go generics over zero-size
// strategy types so the hot loop never pays for interface dispatch.
package spritedecode

import "fmt"

// TileWidth is the fixed pixel width of every encoded tile primitive.
const TileWidth = 32

// SquareHeight is the row count for Square, TransparentSquare, and both
// trapezoids. Triangle primitives are one row shorter.
const SquareHeight = 32

// TriangleHeight is the row count for LeftTriangle/RightTriangle.
const TriangleHeight = 31

// DecodedTile is a decoded frame: one palette-index byte and an "opaque"
// bit per cell, rows ordered bottom to top as encoded. Opaque
// distinguishes "this primitive's shape doesn't cover this cell at all"
// (e.g. a triangle's corners) from the separate mask-table transparency
// the Stippled/Blended modes apply on top.
type DecodedTile struct {
	Rows   int
	Pixel  [SquareHeight][TileWidth]byte
	Opaque [SquareHeight][TileWidth]bool
}

// DecodeSquare decodes the Square primitive: 32x32 raw palette-indexed
// bytes, row-major bottom-to-top, no run-length encoding.
func DecodeSquare(data []byte) (DecodedTile, error) {
	var t DecodedTile
	t.Rows = SquareHeight
	if len(data) < SquareHeight*TileWidth {
		return t, fmt.Errorf("spritedecode: Square frame too short: %d bytes", len(data))
	}
	for row := 0; row < SquareHeight; row++ {
		for col := 0; col < TileWidth; col++ {
			t.Pixel[row][col] = data[row*TileWidth+col]
			t.Opaque[row][col] = true
		}
	}
	return t, nil
}

// DecodeTransparentSquare decodes the TransparentSquare primitive:
// per-row RLE of signed int8 run lengths. A positive run of N copies the
// next N bytes as opaque pixels; a negative run of N skips N columns,
// leaving them fully transparent. Runs never cross row boundaries.
func DecodeTransparentSquare(data []byte) (DecodedTile, error) {
	var t DecodedTile
	t.Rows = SquareHeight
	pos := 0
	for row := 0; row < SquareHeight; row++ {
		col := 0
		for col < TileWidth {
			if pos >= len(data) {
				return t, fmt.Errorf("spritedecode: TransparentSquare ran out of data at row %d", row)
			}
			run := int8(data[pos])
			pos++
			if run >= 0 {
				n := int(run)
				for i := 0; i < n && col < TileWidth; i++ {
					if pos >= len(data) {
						return t, fmt.Errorf("spritedecode: TransparentSquare ran out of pixel data at row %d", row)
					}
					t.Pixel[row][col] = data[pos]
					t.Opaque[row][col] = true
					pos++
					col++
				}
			} else {
				col += int(-run)
			}
		}
	}
	return t, nil
}

// triangleRowWidth returns the visible column span for row i of the
// 31-row triangle growth pattern: widths climb by 2 per row, peak
// mid-shape, then shrink back down symmetrically.
func triangleRowWidth(row int) int {
	if row < 15 {
		return 2 * (row + 1)
	}
	return 2 * (TriangleHeight - row)
}

// DecodeLeftTriangle decodes the LeftTriangle primitive: 31 rows of
// varying width per triangleRowWidth, with every even-indexed row preceded
// by 2 padding bytes that carry no pixel data.
func DecodeLeftTriangle(data []byte) (DecodedTile, error) {
	return decodeTriangle(data, true)
}

// DecodeRightTriangle decodes the RightTriangle primitive: the mirror of
// LeftTriangle, with the 2 padding bytes following each even row instead of
// preceding it, and pixels right-aligned within the row.
func DecodeRightTriangle(data []byte) (DecodedTile, error) {
	return decodeTriangle(data, false)
}

func decodeTriangle(data []byte, left bool) (DecodedTile, error) {
	var t DecodedTile
	t.Rows = TriangleHeight
	pos := 0
	for row := 0; row < TriangleHeight; row++ {
		width := triangleRowWidth(row)
		even := row%2 == 0

		if left && even {
			pos += 2
		}
		if pos+width > len(data) {
			return t, fmt.Errorf("spritedecode: triangle ran out of data at row %d", row)
		}

		start := 0
		if !left {
			start = TileWidth - width
		}
		for i := 0; i < width; i++ {
			t.Pixel[row][start+i] = data[pos+i]
			t.Opaque[row][start+i] = true
		}
		pos += width

		if !left && even {
			pos += 2
		}
	}
	return t, nil
}

// DecodeLeftTrapezoid decodes the LeftTrapezoid primitive: 16 rows of the
// LeftTriangle growth pattern (rows 0..15, widths 2,4,...,32) followed by
// 16 full-width raw rows.
func DecodeLeftTrapezoid(data []byte) (DecodedTile, error) {
	return decodeTrapezoid(data, true)
}

// DecodeRightTrapezoid decodes the RightTrapezoid primitive, the mirror of
// LeftTrapezoid.
func DecodeRightTrapezoid(data []byte) (DecodedTile, error) {
	return decodeTrapezoid(data, false)
}

func decodeTrapezoid(data []byte, left bool) (DecodedTile, error) {
	var t DecodedTile
	t.Rows = SquareHeight
	pos := 0

	for row := 0; row < 16; row++ {
		width := 2 * (row + 1)
		even := row%2 == 0
		if left && even {
			pos += 2
		}
		if pos+width > len(data) {
			return t, fmt.Errorf("spritedecode: trapezoid ran out of data at row %d", row)
		}
		start := 0
		if !left {
			start = TileWidth - width
		}
		for i := 0; i < width; i++ {
			t.Pixel[row][start+i] = data[pos+i]
			t.Opaque[row][start+i] = true
		}
		pos += width
		if !left && even {
			pos += 2
		}
	}

	for row := 16; row < SquareHeight; row++ {
		if pos+TileWidth > len(data) {
			return t, fmt.Errorf("spritedecode: trapezoid ran out of data at row %d", row)
		}
		for col := 0; col < TileWidth; col++ {
			t.Pixel[row][col] = data[pos+col]
			t.Opaque[row][col] = true
		}
		pos += TileWidth
	}

	return t, nil
}

// Primitive identifies which of the six encodings a block's high nibble
// ((block & 0x7000) >> 12) selects.
type Primitive int

const (
	PrimitiveSquare Primitive = iota
	PrimitiveTransparentSquare
	PrimitiveLeftTriangle
	PrimitiveRightTriangle
	PrimitiveLeftTrapezoid
	PrimitiveRightTrapezoid
)

// PrimitiveOf resolves which primitive a block encoding selects.
func PrimitiveOf(block uint16) Primitive {
	return Primitive((block & 0x7000) >> 12)
}

// Decode dispatches to the matching decode function for the block's
// primitive type.
func Decode(block uint16, data []byte) (DecodedTile, error) {
	switch PrimitiveOf(block) {
	case PrimitiveSquare:
		return DecodeSquare(data)
	case PrimitiveTransparentSquare:
		return DecodeTransparentSquare(data)
	case PrimitiveLeftTriangle:
		return DecodeLeftTriangle(data)
	case PrimitiveRightTriangle:
		return DecodeRightTriangle(data)
	case PrimitiveLeftTrapezoid:
		return DecodeLeftTrapezoid(data)
	case PrimitiveRightTrapezoid:
		return DecodeRightTrapezoid(data)
	default:
		return DecodedTile{}, fmt.Errorf("spritedecode: unknown primitive %d", PrimitiveOf(block))
	}
}
